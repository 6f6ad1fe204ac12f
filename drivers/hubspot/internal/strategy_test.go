package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/streamzip/tap-hubspot/pkg/hubapi"
)

func TestStaleThreshold(t *testing.T) {
	now := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	h := &Hubspot{now: func() time.Time { return now }}

	// exactly 30 days old is still fresh; a second past is stale
	assert.False(t, h.stale(now.Add(-30*24*time.Hour)))
	assert.True(t, h.stale(now.Add(-30*24*time.Hour-time.Second)))
	assert.False(t, h.stale(now.Add(-time.Hour)))
}

func TestContactsPlanOffsets(t *testing.T) {
	full := contactsPlan(true)
	assert.Equal(t, hubapi.ContactsAll, full.endpoint)
	assert.Equal(t, []string{"vid-offset"}, full.page.OffsetKeys)
	assert.Equal(t, []string{"vidOffset"}, full.page.OffsetTargets)

	recent := contactsPlan(false)
	assert.Equal(t, hubapi.ContactsRecent, recent.endpoint)
	// the recent variant advances an identity and a time cursor together
	assert.Equal(t, []string{"vid-offset", "time-offset"}, recent.page.OffsetKeys)
	assert.Equal(t, []string{"vidOffset", "timeOffset"}, recent.page.OffsetTargets)
}

func TestCompaniesPlanVariants(t *testing.T) {
	full := companiesPlan(true)
	assert.Equal(t, hubapi.CompaniesAll, full.endpoint)
	assert.Equal(t, "companies", full.page.ListPath)
	assert.Equal(t, "has-more", full.page.MoreKey)

	recent := companiesPlan(false)
	assert.Equal(t, hubapi.CompaniesRecent, recent.endpoint)
	assert.Equal(t, "results", recent.page.ListPath)
	assert.Equal(t, "hasMore", recent.page.MoreKey)
}

func TestDealsPlanSharesPageSpec(t *testing.T) {
	full := dealsPlan(true)
	recent := dealsPlan(false)
	assert.Equal(t, hubapi.DealsAll, full.endpoint)
	assert.Equal(t, hubapi.DealsRecent, recent.endpoint)
	assert.Equal(t, full.page, recent.page)
}
