package web

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	storagemysql "github.com/gofiber/storage/mysql/v2"
	storagepostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/dsn"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

const rateLimitTable = "rate_limits"

// limiterStorage returns the database storage for the limiter counters,
// nil keeps them in process memory.
func limiterStorage(cfg *config.Config) fiber.Storage {
	if !cfg.RateLimit.UseDB {
		return nil
	}

	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return storagepostgres.New(storagepostgres.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         rateLimitTable,
		})
	case config.EngineSQLite:
		log.Warn().Msg("rate limit storage in the database is not supported with sqlite, using memory")
		return nil
	default:
		return storagemysql.New(storagemysql.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         rateLimitTable,
		})
	}
}

// publicLimiter throttles the unauthenticated write endpoints per client ip.
func publicLimiter(cfg *config.Config, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: cfg.RateLimit.Expiration,
		Storage:    storage,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(_ fiber.Ctx) error {
			return handler.NewError(fiber.StatusTooManyRequests, "too many requests, try again later")
		},
	})
}
