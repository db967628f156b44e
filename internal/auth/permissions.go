package auth

// Resources guarded by RBAC rows. Every admin API route belongs to one of them.
const (
	ResourceSettings       = "settings"
	ResourceCMS            = "cms"
	ResourcePayments       = "payments"
	ResourceCampaigns      = "campaigns"
	ResourceInfluencers    = "influencers"
	ResourceBrands         = "brands"
	ResourceApprovalChains = "approval-chains"
	ResourceWebhooks       = "webhooks"
	ResourceIPWhitelist    = "ip-whitelist"
	ResourceRBAC           = "rbac"
	ResourceAnnouncements  = "announcements"
	ResourceContact        = "contact-submissions"
	ResourceNewsletter     = "newsletter"
	ResourceProfile        = "profile"
)

// Actions on a resource.
const (
	ActionRead  = "read"
	ActionWrite = "write"
)

// RoleAdmin is always allowed every action.
const RoleAdmin = "admin"

// Resources returns every guarded resource.
func Resources() []string {
	return []string{
		ResourceSettings,
		ResourceCMS,
		ResourcePayments,
		ResourceCampaigns,
		ResourceInfluencers,
		ResourceBrands,
		ResourceApprovalChains,
		ResourceWebhooks,
		ResourceIPWhitelist,
		ResourceRBAC,
		ResourceAnnouncements,
		ResourceContact,
		ResourceNewsletter,
		ResourceProfile,
	}
}
