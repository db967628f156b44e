// Package lists serves the simple admin lists: approval chains, webhooks,
// the IP whitelist, RBAC rows and announcements.
package lists

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/AgencyAdmin/AgencyAdmin/internal/auth"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/web/handler"
)

// Paths of the list resources.
const (
	ApprovalChainsPath = handler.APIPath + "/approval-chains"
	WebhooksPath       = handler.APIPath + "/webhooks"
	IPWhitelistPath    = handler.APIPath + "/ip-whitelist"
	RBACPath           = handler.APIPath + "/rbac"
	AnnouncementsPath  = handler.APIPath + "/announcements"
)

// Service is the lists handler service.
type Service struct {
	handler.Service
	deps *handler.Deps

	approvalChains handler.Resource[models.ApprovalChain]
	webhooks       handler.Resource[models.Webhook]
	ipWhitelist    handler.Resource[models.IPWhitelist]
	rbac           handler.Resource[models.Permission]
	announcements  handler.Resource[models.Announcement]
}

// Handler is the lists handler.
var Handler = Service{}

// Init initializes the lists handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return nil
	}

	s.deps = deps

	// routes below the collections go first so /:id does not shadow them
	app.Get(ApprovalChainsPath+"/match", deps.Auth.Guard(auth.ResourceApprovalChains, auth.ActionRead), s.MatchApprovalChain)
	app.Post(WebhooksPath+"/:id/test", deps.Auth.Guard(auth.ResourceWebhooks, auth.ActionWrite), s.TestWebhook)

	s.approvalChains = handler.Resource[models.ApprovalChain]{
		Path:       ApprovalChainsPath,
		Permission: auth.ResourceApprovalChains,
		Order:      "entity, threshold, id",
	}
	s.webhooks = handler.Resource[models.Webhook]{
		Path:       WebhooksPath,
		Permission: auth.ResourceWebhooks,
		Prepare:    prepareWebhook,
	}
	s.ipWhitelist = handler.Resource[models.IPWhitelist]{
		Path:       IPWhitelistPath,
		Permission: auth.ResourceIPWhitelist,
		Order:      "ip, id",
	}
	s.rbac = handler.Resource[models.Permission]{
		Path:       RBACPath,
		Permission: auth.ResourceRBAC,
		Order:      "role, resource, action",
		Filter:     roleFilter,
	}
	s.announcements = handler.Resource[models.Announcement]{
		Path:       AnnouncementsPath,
		Permission: auth.ResourceAnnouncements,
		Prepare:    prepareAnnouncement,
	}

	s.approvalChains.Register(app, deps)
	s.webhooks.Register(app, deps)
	s.ipWhitelist.Register(app, deps)
	s.rbac.Register(app, deps)
	s.announcements.Register(app, deps)

	return nil
}
