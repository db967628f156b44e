package config

import (
	"time"

	"github.com/AgencyAdmin/AgencyAdmin/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	RateLimit RateLimit
	Webhook   Webhook
	Redis     Redis
	Mail      Mail
	Upload    Upload
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool     // disable recover middleware
	Port           int      // listening port for the webserver
	ShutDownTime   int      // wait time for shutdown
	URL            string   // base url for the webserver
	BodyLimit      int      // max request body size in bytes
	CORSOrigins    []string // allowed CORS origins, empty disables the cors middleware
	CheckAliveURI  string   // path of the load balancer health check
}

// Auth holds the settings for verifying ID tokens of the external identity provider.
type Auth struct {
	Enabled   bool
	IssuerURL string
	ClientID  string
	RoleClaim string // claim carrying the admin role, defaults to "role"
}

// RateLimit configures the limiter in front of public endpoints.
type RateLimit struct {
	Max        int           // requests per window and client ip
	Expiration time.Duration // window length
	UseDB      bool          // keep counters in the database instead of memory
}

// Webhook configures outbound webhook delivery.
type Webhook struct {
	Workers           int
	QueueSize         int
	RequestsPerSecond float64
	Timeout           time.Duration
}

// Redis configures the optional event publisher.
type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Mail configures SMTP notifications.
type Mail struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	From     string
	NotifyTo string // recipient of contact form notifications
}

// Upload configures where uploaded profile images are stored.
type Upload struct {
	Dir        string
	AvatarSize int // edge length of the square avatar thumbnail in pixels
}
