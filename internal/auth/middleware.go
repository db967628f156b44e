package auth

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

const identityLocal = "identity"

// FromContext returns the identity stored by Authenticate, the zero identity when there is none.
func FromContext(c fiber.Ctx) Identity {
	id, _ := c.Locals(identityLocal).(Identity)
	return id
}

func bearer(c fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)

	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}

	return ""
}

// identify verifies the bearer token and stores the caller identity in the request locals.
func (s *Service) identify(c fiber.Ctx) error {
	if !s.Enabled() {
		c.Locals(identityLocal, DevIdentity)
		return nil
	}

	raw := bearer(c)
	if raw == "" {
		return fiber.NewError(fiber.StatusUnauthorized, ErrMissingToken.Error())
	}

	id, err := s.verifier.Verify(c.Context(), raw)
	if err != nil {
		log.Warn().Err(err).Str("ip", c.IP()).Msg("token verification failed")
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	c.Locals(identityLocal, id)

	return nil
}

func (s *Service) checkIP(c fiber.Ctx) error {
	allowed, err := s.IPAllowed(c.IP())
	if err != nil {
		log.Error().Err(err).Str("ip", c.IP()).Msg("failed to check ip whitelist")
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}

	if !allowed {
		log.Warn().Str("ip", c.IP()).Str("path", c.Path()).Msg("ip not whitelisted")
		return fiber.NewError(fiber.StatusForbidden, "Forbidden: ip address not whitelisted")
	}

	return nil
}

func (s *Service) authorize(c fiber.Ctx, resource, action string) error {
	id := FromContext(c)
	if id.Subject == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}

	hasPermission, err := s.HasPermission(id.Role, resource, action)
	if err != nil {
		log.Error().Err(err).Str("subject", id.Subject).Str("resource", resource).Str("action", action).
			Msg("Failed to check permission")

		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	if !hasPermission {
		log.Warn().Str("subject", id.Subject).Str("role", id.Role).Str("resource", resource).Str("action", action).
			Msg("User lacks required permission")

		return fiber.NewError(fiber.StatusForbidden, "Forbidden: You don't have permission to access this resource")
	}

	return nil
}

// Authenticate verifies the bearer token and stores the caller identity in the request locals.
func (s *Service) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := s.identify(c); err != nil {
			return err
		}

		return c.Next()
	}
}

// RestrictIP rejects admin API calls from addresses outside the whitelist while enforcement is on.
func (s *Service) RestrictIP() fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := s.checkIP(c); err != nil {
			return err
		}

		return c.Next()
	}
}

// RequirePermission creates Fiber middleware that requires the caller role to hold a permission.
// It must run after Authenticate.
func (s *Service) RequirePermission(resource, action string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := s.authorize(c, resource, action); err != nil {
			return err
		}

		return c.Next()
	}
}

// Guard runs RestrictIP, Authenticate and RequirePermission as one route handler.
// Admin routes use it directly so public routes can share the /api prefix.
func (s *Service) Guard(resource, action string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if err := s.checkIP(c); err != nil {
			return err
		}

		if err := s.identify(c); err != nil {
			return err
		}

		if err := s.authorize(c, resource, action); err != nil {
			return err
		}

		return c.Next()
	}
}
