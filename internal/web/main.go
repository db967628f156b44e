// Package web assembles the fiber application serving the admin API.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	fiberlog "github.com/AgencyAdmin/AgencyAdmin/internal/logger/adapter/fiber"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/brands"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/campaigns"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/cms"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/contact"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/influencers"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/lists"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/newsletter"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/panels"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/payments"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/platformsettings"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler/profile"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	deps         *handler.Deps
}

// Start listens on addr and blocks until the server is shut down.
func (s *Service) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("starting http server")

	err := s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Alive reports whether the check alive endpoint answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown drains the server: check alive fails for ShutDownTime seconds, then fiber stops.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Services returns the handler services registered by New, in registration order.
func Services() []handler.Service {
	return []handler.Service{
		&platformsettings.Handler,
		&panels.Handler,
		&cms.Handler,
		&payments.Handler,
		&brands.Handler,
		&influencers.Handler,
		&campaigns.Handler,
		&lists.Handler,
		&contact.Handler,
		&newsletter.Handler,
		&profile.Handler,
	}
}

// New creates the web service, registering the middleware stack and every handler service.
func New(cfg *config.Config, deps *handler.Deps, services ...handler.Service) (*Service, error) {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if !deps.Valid() {
		panic(handler.ErrNilDepsFatalLogMsg)
	}

	if len(services) == 0 {
		services = Services()
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimit,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	s := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
		deps:         deps,
	}
	s.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recoverer.New(recoverer.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(metricsMiddleware(cfg.Webserver.CheckAliveURI, MetricsPath))
	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: cfg.Webserver.CheckAliveURI,
	}))

	if len(cfg.Webserver.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.Webserver.CORSOrigins,
			AllowHeaders:  []string{fiber.HeaderAuthorization, fiber.HeaderContentType, handler.HeaderIfMatch},
			ExposeHeaders: []string{fiber.HeaderETag, handler.HeaderVersion},
		}))
	}

	app.Get(cfg.Webserver.CheckAliveURI, func(c fiber.Ctx) error {
		if !s.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	if deps.PublicLimiter == nil {
		deps.PublicLimiter = publicLimiter(cfg, limiterStorage(cfg))
	}

	// every handler registers its own routes with permission checks
	for _, svc := range services {
		if err := svc.Init(app, deps); err != nil {
			return nil, err
		}
	}

	return s, nil
}
