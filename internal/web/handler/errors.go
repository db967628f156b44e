package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/cms"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/approvalchain"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/brand"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/campaign"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/crud"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/influencer"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/manual"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/payment"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/platform"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/setting"
	"github.com/AgencyAdmin/AgencyAdmin/internal/media"
	"github.com/AgencyAdmin/AgencyAdmin/internal/panel"
)

// Error is an API error with optional details, rendered by ErrorHandler.
type Error struct {
	Code    int
	Message string
	Details []string
}

// NewError creates an API error.
func NewError(code int, message string, details ...string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// Error implements error.
func (e *Error) Error() string {
	return e.Message
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// ErrorHandler renders errors returned by handlers as JSON.
func ErrorHandler(c fiber.Ctx, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Code).JSON(ErrorResponse{Error: apiErr.Message, Details: apiErr.Details})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{Error: fiberErr.Message})
	}

	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "Internal Server Error"})
}

// ValidationError turns validator errors into a 400 listing every failed field.
func ValidationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return NewError(fiber.StatusBadRequest, err.Error())
	}

	details := make([]string, len(ve))
	for i, fe := range ve {
		details[i] = fmt.Sprintf("Field '%s' failed validation tag '%s'", fe.Namespace(), fe.Tag())
	}

	return NewError(fiber.StatusBadRequest, "validation failed", details...)
}

var notFound = []error{ //nolint:gochecknoglobals
	crud.ErrNotFound,
	setting.ErrSettingNotFound,
	payment.ErrPaymentNotFound,
	manual.ErrTransactionNotFound,
	campaign.ErrCampaignNotFound,
	approvalchain.ErrNoChain,
	cms.ErrItemNotFound,
	cms.ErrUnknownCollection,
	panel.ErrUnknownPanel,
}

var conflict = []error{ //nolint:gochecknoglobals
	crud.ErrConflict,
	setting.ErrVersionConflict,
	brand.ErrBrandInUse,
	influencer.ErrInfluencerAssigned,
	cms.ErrDuplicateID,
}

var badRequest = []error{ //nolint:gochecknoglobals
	platform.ErrInvalidCommission,
	platform.ErrInvalidBlob,
	platform.ErrInvalidFlag,
	panel.ErrUnknownKey,
	panel.ErrInvalidValue,
	campaign.ErrBrandNotFound,
	campaign.ErrInvalidDates,
	campaign.ErrInfluencerNotFound,
	campaign.ErrInfluencerNotApproved,
	campaign.ErrDuplicateInfluencer,
	campaign.ErrNegativeAmount,
	manual.ErrNegativeAmount,
	payment.ErrInvalidStatus,
	payment.ErrInvalidType,
	media.ErrUnsupportedImage,
}

func matches(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}

	return false
}

// FromDomain maps controller errors to API errors, unknown errors pass through as 500.
func FromDomain(err error) error {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ValidationError(err)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case matches(err, notFound):
		return NewError(fiber.StatusNotFound, err.Error())
	case matches(err, conflict):
		return NewError(fiber.StatusConflict, err.Error())
	case matches(err, badRequest):
		return NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return NewError(fiber.StatusBadRequest, "invalid JSON body", err.Error())
	default:
		return err
	}
}
