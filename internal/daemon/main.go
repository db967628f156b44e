// Package daemon wires the database, the side effect sinks and the web service into one process.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/dsn"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/events"
	"github.com/AgencyAdmin/AgencyAdmin/internal/mail"
	"github.com/AgencyAdmin/AgencyAdmin/internal/media"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
	"github.com/AgencyAdmin/AgencyAdmin/internal/webhook"
)

const stopTimeout = 15 * time.Second

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
	webhooks   *webhook.Dispatcher
	redis      *events.RedisSink
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.DevMode {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dsn.Dialector(cfg), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	return db, nil
}

// Migrate creates or updates every table and seeds the defaults.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return seed(db)
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	var verifier auth.TokenVerifier

	if cfg.Auth.Enabled {
		v, err := auth.NewOIDCVerifier(ctx, cfg.Auth)
		if err != nil {
			return nil, err
		}

		verifier = v
	} else {
		log.Warn().Msg("authentication disabled: every request runs as the dev admin")
	}

	d := &Daemon{
		cfg:      cfg,
		db:       db,
		webhooks: webhook.New(db, cfg.Webhook, nil),
	}

	sinks := []events.Sink{d.webhooks}

	if cfg.Redis.Enabled {
		d.redis = events.NewRedisSink(cfg.Redis)
		if err := d.redis.Ping(ctx); err != nil {
			// events still reach the webhooks, redis may come up later
			log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis event sink unreachable")
		}

		sinks = append(sinks, d.redis)
	}

	deps := &handler.Deps{
		Config:    cfg,
		DB:        db,
		Auth:      auth.NewService(db, verifier),
		Events:    events.NewBus(sinks...),
		Mail:      mail.New(cfg.Mail),
		Webhooks:  d.webhooks,
		Media:     media.NewStore(cfg.Upload),
		Validator: validator.New(),
	}

	if d.webService, err = web.New(cfg, deps); err != nil {
		return nil, err
	}

	return d, nil
}

// Start runs the web service until a shutdown signal arrives, then stops the workers.
func (d *Daemon) Start() error {
	d.webhooks.Start()

	listenErr := make(chan error, 1)

	go func() {
		listenErr <- d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
	}()

	stopped := make(chan struct{})

	go func() {
		d.webService.WaitShutdown()
		close(stopped)
	}()

	var err error

	select {
	case err = <-listenErr:
		if err != nil {
			err = errors.Wrap(err, "http server")
		}
	case <-stopped:
	}

	d.stop()

	return err
}

func (d *Daemon) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := d.webhooks.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("webhook dispatcher did not drain")
	}

	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
