package hubapi

import "fmt"

// BaseURL is the CRM API host; overridable on the Client for tests.
const BaseURL = "https://api.hubapi.com"

// TokenPath is the OAuth refresh exchange endpoint.
const TokenPath = "/oauth/v1/token"

// Endpoint is one operation of the API catalog. The catalog is a closed set
// of package vars, so an unknown endpoint cannot exist at runtime; detail
// endpoints carry a printf placeholder filled per call.
type Endpoint struct {
	name string
	path string
}

func (e Endpoint) Name() string {
	return e.name
}

// URL joins the endpoint path onto base, filling path placeholders from args.
func (e Endpoint) URL(base string, args ...any) string {
	if len(args) == 0 {
		return base + e.path
	}
	return base + fmt.Sprintf(e.path, args...)
}

var (
	ContactsProperties = Endpoint{"contacts_properties", "/properties/v1/contacts/properties"}
	ContactsAll        = Endpoint{"contacts_all", "/contacts/v1/lists/all/contacts/all"}
	ContactsRecent     = Endpoint{"contacts_recent", "/contacts/v1/lists/recently_updated/contacts/recent"}
	ContactsDetail     = Endpoint{"contacts_detail", "/contacts/v1/contact/vids/batch/"}

	CompaniesProperties = Endpoint{"companies_properties", "/companies/v2/properties"}
	CompaniesAll        = Endpoint{"companies_all", "/companies/v2/companies/paged"}
	CompaniesRecent     = Endpoint{"companies_recent", "/companies/v2/companies/recent/modified"}
	CompaniesDetail     = Endpoint{"companies_detail", "/companies/v2/companies/%s"}

	// deal properties share the companies properties endpoint
	DealsProperties = Endpoint{"deals_properties", "/companies/v2/properties"}
	DealsAll        = Endpoint{"deals_all", "/deals/v1/deal/paged"}
	DealsRecent     = Endpoint{"deals_recent", "/deals/v1/deal/recent/modified"}
	DealsDetail     = Endpoint{"deals_detail", "/deals/v1/deal/%s"}

	CampaignsAll    = Endpoint{"campaigns_all", "/email/public/v1/campaigns/by-id"}
	CampaignsDetail = Endpoint{"campaigns_detail", "/email/public/v1/campaigns/%s"}

	SubscriptionChanges = Endpoint{"subscription_changes", "/email/public/v1/subscriptions/timeline"}
	EmailEvents         = Endpoint{"email_events", "/email/public/v1/events"}
	ContactLists        = Endpoint{"contact_lists", "/contacts/v1/lists"}
	Forms               = Endpoint{"forms", "/forms/v2/forms"}
	Workflows           = Endpoint{"workflows", "/automation/v3/workflows"}
	Keywords            = Endpoint{"keywords", "/keywords/v1/keywords"}
	Owners              = Endpoint{"owners", "/owners/v2/owners"}
)
