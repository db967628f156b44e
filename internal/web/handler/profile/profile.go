// Package profile serves the profile of the authenticated admin.
package profile

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

// Paths of the profile routes.
const (
	Path       = handler.APIPath + "/profile"
	UpdatePath = Path + "/update"
	AvatarPath = Path + "/avatar"
)

// Input holds the form fields of a profile update.
type Input struct {
	Name  string `json:"name" validate:"max=200"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
	Phone string `json:"phone" validate:"max=50"`
	Bio   string `json:"bio" validate:"max=5000"`
}

// Service is the profile handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the profile handler.
var Handler = Service{}

// Init initializes the profile handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps

	read := deps.Auth.Guard(auth.ResourceProfile, auth.ActionRead)
	write := deps.Auth.Guard(auth.ResourceProfile, auth.ActionWrite)

	app.Get(Path, read, s.Get)
	app.Get(AvatarPath, read, s.Avatar)
	app.Post(UpdatePath, write, s.Update)

	return nil
}

// load returns the stored profile of the caller, or one prefilled from the token.
func (s *Service) load(id auth.Identity) (*models.AdminProfile, error) {
	p := models.AdminProfile{}

	err := s.deps.DB.Where("subject = ?", id.Subject).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.AdminProfile{Subject: id.Subject, Name: id.Name, Email: id.Email}, nil
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Get returns the caller's profile.
func (s *Service) Get(c fiber.Ctx) error {
	p, err := s.load(auth.FromContext(c))
	if err != nil {
		return err
	}

	return c.JSON(p)
}

// Avatar sends the caller's avatar image.
func (s *Service) Avatar(c fiber.Ctx) error {
	p, err := s.load(auth.FromContext(c))
	if err != nil {
		return err
	}

	if p.Avatar == "" {
		return handler.NewError(fiber.StatusNotFound, "no avatar uploaded")
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")

	return c.SendFile(s.deps.Media.Path(p.Avatar))
}

// Update stores the multipart profile form, resizing an uploaded avatar.
func (s *Service) Update(c fiber.Ctx) error {
	id := auth.FromContext(c)
	if id.Subject == "" {
		return handler.NewError(fiber.StatusUnauthorized, auth.ErrMissingToken.Error())
	}

	form, err := c.MultipartForm()
	if err != nil {
		return handler.NewError(fiber.StatusBadRequest, "expected a multipart form", err.Error())
	}

	in := Input{
		Name:  first(form.Value["name"]),
		Email: first(form.Value["email"]),
		Phone: first(form.Value["phone"]),
		Bio:   first(form.Value["bio"]),
	}
	if err := s.deps.Validate(&in); err != nil {
		return err
	}

	p, err := s.load(id)
	if err != nil {
		return err
	}

	previous := p.Avatar

	p.Name = in.Name
	p.Email = in.Email
	p.Phone = in.Phone
	p.Bio = in.Bio

	if files := form.File["avatar"]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			return handler.NewError(fiber.StatusBadRequest, "unreadable avatar upload", err.Error())
		}
		defer func() {
			_ = f.Close()
		}()

		rel, err := s.deps.Media.SaveAvatar(f)
		if err != nil {
			return handler.FromDomain(err)
		}

		p.Avatar = rel
	}

	// a zero id inserts the first profile of the subject
	if err := s.deps.DB.Save(p).Error; err != nil {
		if p.Avatar != previous {
			_ = s.deps.Media.Remove(p.Avatar) //nolint:errcheck // the save error is reported
		}

		return handler.FromDomain(err)
	}

	if p.Avatar != previous {
		if err := s.deps.Media.Remove(previous); err != nil {
			log.Warn().Err(err).Str("avatar", previous).Msg("failed to remove replaced avatar")
		}
	}

	return c.JSON(p)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
