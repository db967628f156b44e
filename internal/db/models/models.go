package models

// All returns every model handled by the auto-migration, in dependency order.
func All() []any {
	return []any{
		&Setting{},
		&Permission{},
		&Brand{},
		&Influencer{},
		&Campaign{},
		&CampaignInfluencer{},
		&ManualTransaction{},
		&Payment{},
		&ApprovalChain{},
		&Webhook{},
		&IPWhitelist{},
		&Announcement{},
		&ContactSubmission{},
		&NewsletterSubscriber{},
		&AdminProfile{},
	}
}
