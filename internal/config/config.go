// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvJSONOverride is the environment variable holding a JSON config merged over the file.
	EnvJSONOverride = "AGENCY_ADMIN_CONFIG_JSON"

	mainConfigFile = "main.toml"

	defaultShutDownTime   = 5
	defaultBodyLimit      = 8 * 1024 * 1024
	defaultCheckAliveURI  = "/checkalive"
	defaultRoleClaim      = "role"
	defaultRateLimitMax   = 20
	defaultRateLimitTTL   = time.Minute
	defaultWebhookWorkers = 2
	defaultWebhookQueue   = 256
	defaultWebhookRPS     = 10
	defaultWebhookTimeout = 10 * time.Second
	defaultRedisChannel   = "agency-admin.events"
	defaultUploadDir      = "./uploads"
	defaultAvatarSize     = 256
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, mainConfigFile))
	v.SetConfigType("toml")

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvJSONOverride)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config override")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not start without
// and fills in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case EngineMySQL, EnginePostgres, EngineSQLite:
	case "":
		c.DB.GormEngine = EngineMySQL
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if c.Auth.Enabled && (c.Auth.IssuerURL == "" || c.Auth.ClientID == "") {
		return errors.Wrap(ErrAuthIssuerMissing, invalidErrMessage)
	}

	setDefaults(c)

	return nil
}

func setDefaults(c *Config) {
	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.BodyLimit == 0 {
		c.Webserver.BodyLimit = defaultBodyLimit
	}

	if c.Webserver.CheckAliveURI == "" {
		c.Webserver.CheckAliveURI = defaultCheckAliveURI
	}

	if c.Auth.RoleClaim == "" {
		c.Auth.RoleClaim = defaultRoleClaim
	}

	if c.RateLimit.Max == 0 {
		c.RateLimit.Max = defaultRateLimitMax
	}

	if c.RateLimit.Expiration == 0 {
		c.RateLimit.Expiration = defaultRateLimitTTL
	}

	if c.Webhook.Workers == 0 {
		c.Webhook.Workers = defaultWebhookWorkers
	}

	if c.Webhook.QueueSize == 0 {
		c.Webhook.QueueSize = defaultWebhookQueue
	}

	if c.Webhook.RequestsPerSecond == 0 {
		c.Webhook.RequestsPerSecond = defaultWebhookRPS
	}

	if c.Webhook.Timeout == 0 {
		c.Webhook.Timeout = defaultWebhookTimeout
	}

	if c.Redis.Channel == "" {
		c.Redis.Channel = defaultRedisChannel
	}

	if c.Upload.Dir == "" {
		c.Upload.Dir = defaultUploadDir
	}

	if c.Upload.AvatarSize == 0 {
		c.Upload.AvatarSize = defaultAvatarSize
	}
}
