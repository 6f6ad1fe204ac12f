package driver

import (
	"time"

	"github.com/streamzip/tap-hubspot/constants"
	"github.com/streamzip/tap-hubspot/pkg/hubapi"
)

// listingPlan is the outcome of sync strategy selection: which endpoint
// variant to crawl and under which pagination convention.
type listingPlan struct {
	endpoint hubapi.Endpoint
	page     hubapi.PageSpec
}

// stale reports whether the watermark is older than the recent endpoints'
// bounded look-back window, forcing a full crawl.
func (h *Hubspot) stale(lastSync time.Time) bool {
	return h.now().UTC().Sub(lastSync) > constants.FullSyncThresholdDays*24*time.Hour
}

// contactsPlan: the full variant pages on a single identity cursor; the
// recent variant advances an identity offset and a time offset together.
func contactsPlan(stale bool) listingPlan {
	if stale {
		return listingPlan{
			endpoint: hubapi.ContactsAll,
			page: hubapi.PageSpec{
				ListPath:      "contacts",
				MoreKey:       "has-more",
				OffsetKeys:    []string{"vid-offset"},
				OffsetTargets: []string{"vidOffset"},
			},
		}
	}
	return listingPlan{
		endpoint: hubapi.ContactsRecent,
		page: hubapi.PageSpec{
			ListPath:      "contacts",
			MoreKey:       "has-more",
			OffsetKeys:    []string{"vid-offset", "time-offset"},
			OffsetTargets: []string{"vidOffset", "timeOffset"},
		},
	}
}

func companiesPlan(stale bool) listingPlan {
	if stale {
		return listingPlan{
			endpoint: hubapi.CompaniesAll,
			page: hubapi.PageSpec{
				ListPath:      "companies",
				MoreKey:       "has-more",
				OffsetKeys:    []string{"offset"},
				OffsetTargets: []string{"offset"},
			},
		}
	}
	return listingPlan{
		endpoint: hubapi.CompaniesRecent,
		page: hubapi.PageSpec{
			ListPath:      "results",
			MoreKey:       "hasMore",
			OffsetKeys:    []string{"offset"},
			OffsetTargets: []string{"offset"},
		},
	}
}

func dealsPlan(stale bool) listingPlan {
	plan := listingPlan{
		endpoint: hubapi.DealsAll,
		page: hubapi.PageSpec{
			ListPath:      "deals",
			MoreKey:       "hasMore",
			OffsetKeys:    []string{"offset"},
			OffsetTargets: []string{"offset"},
		},
	}
	if !stale {
		plan.endpoint = hubapi.DealsRecent
	}
	return plan
}
