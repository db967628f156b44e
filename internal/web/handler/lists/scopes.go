package lists

import (
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/crud"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

// roleFilter narrows the RBAC list to ?role=.
func roleFilter(c fiber.Ctx) ([]crud.Scope, error) {
	role := c.Query("role")
	if role == "" {
		return nil, nil
	}

	return []crud.Scope{func(q *gorm.DB) *gorm.DB {
		return q.Where("role = ?", role)
	}}, nil
}

// prepareAnnouncement defaults the audience and checks the display window.
func prepareAnnouncement(_ fiber.Ctx, v *models.Announcement, _ *models.Announcement) error {
	if v.Audience == "" {
		v.Audience = "all"
	}

	if v.StartsAt != nil && v.EndsAt != nil && v.EndsAt.Before(*v.StartsAt) {
		return handler.NewError(fiber.StatusBadRequest, "endsAt must not be before startsAt")
	}

	return nil
}
