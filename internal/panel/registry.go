package panel

// IPWhitelistEnabledKey turns on IP whitelist enforcement for the admin API.
const IPWhitelistEnabledKey = "security.ipWhitelistEnabled"

func sw(key, label string, def bool) Control {
	return Control{Key: key, Label: label, Kind: KindSwitch, Default: def}
}

func in(key, label, def string) Control {
	return Control{Key: key, Label: label, Kind: KindInput, Default: def}
}

func num(key, label string, def, lo, hi float64) Control {
	return Control{Key: key, Label: label, Kind: KindNumber, Default: def, Min: &lo, Max: &hi}
}

func sel(key, label, def string, options ...string) Control {
	return Control{Key: key, Label: label, Kind: KindSelect, Default: def, Options: options}
}

var registry = []Panel{
	{ID: "general", Title: "General", Controls: []Control{
		in("general.siteName", "Site name", "Agency"),
		in("general.supportEmail", "Support email", ""),
		sel("general.timezone", "Timezone", "UTC", "UTC", "Asia/Kolkata", "Europe/London", "America/New_York"),
		sel("general.currency", "Currency", "INR", "INR", "USD", "EUR", "GBP"),
	}},
	{ID: "branding", Title: "Branding", Controls: []Control{
		in("branding.logoUrl", "Logo URL", ""),
		in("branding.primaryColor", "Primary color", "#6d28d9"),
		sel("branding.theme", "Theme", "system", "light", "dark", "system"),
	}},
	{ID: "payments", Title: "Payments", Controls: []Control{
		sw("payments.autoPayouts", "Automatic payouts", false),
		num("payments.payoutDelayDays", "Payout delay (days)", 7, 0, 90),
		num("payments.advancePercent", "Default advance (%)", 50, 0, 100),
		sel("payments.gateway", "Gateway", "razorpay", "razorpay", "stripe", "paypal", "bank"),
	}},
	{ID: "commission", Title: "Commission", Controls: []Control{
		sw("commission.showToBrands", "Show commission to brands", false),
		num("commission.minimumFee", "Minimum fee", 0, 0, 1_000_000),
		sel("commission.model", "Commission model", "percentage", "percentage", "flat", "hybrid"),
	}},
	{ID: "notifications", Title: "Notifications", Controls: []Control{
		sw("notifications.email", "Email notifications", true),
		sw("notifications.sms", "SMS notifications", false),
		sw("notifications.push", "Push notifications", false),
		sw("notifications.weeklyDigest", "Weekly digest", true),
	}},
	{ID: "security", Title: "Security", Controls: []Control{
		sw(IPWhitelistEnabledKey, "Restrict admin API to whitelisted IPs", false),
		sw("security.twoFactorRequired", "Require two-factor authentication", false),
		num("security.sessionTimeoutMinutes", "Session timeout (minutes)", 60, 5, 1440),
		num("security.passwordMinLength", "Minimum password length", 8, 6, 128),
	}},
	{ID: "campaigns", Title: "Campaigns", Controls: []Control{
		sw("campaigns.requireApproval", "Require approval before launch", true),
		num("campaigns.maxInfluencers", "Maximum influencers per campaign", 50, 1, 1000),
		sel("campaigns.defaultPlatform", "Default platform", "instagram",
			"instagram", "youtube", "tiktok", "facebook", "twitter", "linkedin"),
	}},
	{ID: "influencers", Title: "Influencers", Controls: []Control{
		sw("influencers.autoApprove", "Approve new influencers automatically", false),
		num("influencers.minFollowers", "Minimum followers", 1000, 0, 100_000_000),
		sw("influencers.publicDirectory", "Public directory", false),
	}},
	{ID: "brands", Title: "Brands", Controls: []Control{
		sw("brands.selfSignup", "Brand self signup", false),
		sw("brands.requireGST", "Require tax number", false),
		num("brands.creditLimit", "Default credit limit", 0, 0, 100_000_000),
	}},
	{ID: "seo", Title: "SEO", Controls: []Control{
		in("seo.metaTitle", "Meta title", ""),
		in("seo.metaDescription", "Meta description", ""),
		sw("seo.indexing", "Allow search engine indexing", true),
		in("seo.googleVerification", "Google verification code", ""),
	}},
	{ID: "integrations", Title: "Integrations", Controls: []Control{
		sw("integrations.slack", "Slack", false),
		in("integrations.slackWebhookUrl", "Slack webhook URL", ""),
		sw("integrations.zapier", "Zapier", false),
	}},
	{ID: "email", Title: "Email", Controls: []Control{
		in("email.fromName", "From name", "Agency"),
		in("email.replyTo", "Reply-to address", ""),
		in("email.footer", "Footer text", ""),
	}},
	{ID: "social", Title: "Social links", Controls: []Control{
		in("social.instagram", "Instagram", ""),
		in("social.youtube", "YouTube", ""),
		in("social.linkedin", "LinkedIn", ""),
		in("social.twitter", "Twitter", ""),
	}},
	{ID: "maintenance", Title: "Maintenance", Controls: []Control{
		sw("maintenance.enabled", "Maintenance mode", false),
		in("maintenance.message", "Maintenance message", "We will be back soon."),
	}},
	{ID: "analytics", Title: "Analytics", Controls: []Control{
		sw("analytics.enabled", "Analytics", true),
		in("analytics.googleAnalyticsId", "Google Analytics ID", ""),
		in("analytics.metaPixelId", "Meta pixel ID", ""),
	}},
	{ID: "content", Title: "Content", Controls: []Control{
		sw("content.blogEnabled", "Blog", true),
		sw("content.testimonialsEnabled", "Testimonials", true),
		sw("content.portfolioEnabled", "Portfolio", true),
		num("content.postsPerPage", "Posts per page", 9, 1, 50),
	}},
	{ID: "localization", Title: "Localization", Controls: []Control{
		sel("localization.language", "Default language", "en", "en", "hi", "es", "fr", "de"),
		sel("localization.dateFormat", "Date format", "DD/MM/YYYY", "DD/MM/YYYY", "MM/DD/YYYY", "YYYY-MM-DD"),
	}},
	{ID: "privacy", Title: "Privacy", Controls: []Control{
		sw("privacy.cookieBanner", "Cookie banner", true),
		num("privacy.dataRetentionDays", "Data retention (days)", 365, 30, 3650),
		in("privacy.policyUrl", "Privacy policy URL", ""),
	}},
	{ID: "support", Title: "Support", Controls: []Control{
		sw("support.liveChat", "Live chat", false),
		in("support.phone", "Support phone", ""),
		in("support.whatsapp", "WhatsApp number", ""),
	}},
	{ID: "api", Title: "API", Controls: []Control{
		sw("api.publicAccess", "Public API access", false),
		num("api.rateLimitPerMinute", "Requests per minute", 60, 1, 10_000),
		sw("api.webhooksEnabled", "Webhooks", true),
	}},
}

var index = buildIndex()

func buildIndex() map[string]Control {
	out := make(map[string]Control)
	for _, p := range registry {
		for _, c := range p.Controls {
			out[c.Key] = c
		}
	}

	return out
}
