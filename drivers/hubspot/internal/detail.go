package driver

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/streamzip/tap-hubspot/constants"
	"github.com/streamzip/tap-hubspot/pkg/hubapi"
	"github.com/streamzip/tap-hubspot/types"
	"github.com/streamzip/tap-hubspot/utils/typeutils"
)

// masterDetail describes a stream whose listing endpoint only returns
// identifiers, requiring one detail fetch per listed entity.
type masterDetail struct {
	stream  types.Stream
	idField string
	detail  hubapi.Endpoint
}

func (h *Hubspot) syncCompanies(ctx context.Context) error {
	lastSync, err := typeutils.ReformatTimestamp(h.state.Watermark(companiesStream.Name, h.config.StartDate))
	if err != nil {
		return fmt.Errorf("bad companies watermark: %s", err)
	}
	return h.syncMasterDetail(ctx, masterDetail{
		stream:  companiesStream,
		idField: "companyId",
		detail:  hubapi.CompaniesDetail,
	}, companiesPlan(h.stale(lastSync)), lastSync)
}

func (h *Hubspot) syncDeals(ctx context.Context) error {
	lastSync, err := typeutils.ReformatTimestamp(h.state.Watermark(dealsStream.Name, h.config.StartDate))
	if err != nil {
		return fmt.Errorf("bad deals watermark: %s", err)
	}
	return h.syncMasterDetail(ctx, masterDetail{
		stream:  dealsStream,
		idField: "dealId",
		detail:  hubapi.DealsDetail,
	}, dealsPlan(h.stale(lastSync)), lastSync)
}

// syncMasterDetail crawls the listing, fetches every entity's full record
// and emits the ones modified at or after the watermark. The watermark
// advances forward-only from each emitted record's modification instant in
// encounter order, checkpointing every 250th listed record.
func (h *Hubspot) syncMasterDetail(ctx context.Context, md masterDetail, plan listingPlan, lastSync time.Time) error {
	schema, err := h.loadSchema(ctx, md.stream.Name)
	if err != nil {
		return err
	}
	if err := h.writer.Schema(md.stream.Name, schema, md.stream.KeyProperties); err != nil {
		return err
	}

	params := url.Values{"count": []string{"250"}}
	pager, err := hubapi.NewPaginator(ctx, h.client, h.client.URL(plan.endpoint), params, plan.page)
	if err != nil {
		return err
	}

	listed := 0
	for pager.Next() {
		listed++
		row := pager.Record()
		data, err := h.client.Get(ctx, h.client.URL(md.detail, formatID(row[md.idField])), nil)
		if err != nil {
			return err
		}
		record, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("unexpected %s detail payload %T", md.stream.Name, data)
		}

		modified, hasModified := modifiedTime(record, "hs_lastmodifieddate", "createdate")
		if !hasModified || !modified.Before(lastSync) {
			if err := h.writer.Record(md.stream.Name, record); err != nil {
				return err
			}
			if hasModified {
				h.advanceWatermark(md.stream.Name, modified)
			}
		}

		if listed%constants.DetailCheckpointEvery == 0 {
			if err := h.writer.State(h.state); err != nil {
				return err
			}
		}
	}
	if err := pager.Err(); err != nil {
		return err
	}

	return h.writer.State(h.state)
}

// syncCampaigns is master-detail without a watermark: campaigns carry no
// modification timestamp, so every listed campaign is fetched and emitted.
func (h *Hubspot) syncCampaigns(ctx context.Context) error {
	schema, err := h.loadSchema(ctx, campaignsStream.Name)
	if err != nil {
		return err
	}
	if err := h.writer.Schema(campaignsStream.Name, schema, campaignsStream.KeyProperties); err != nil {
		return err
	}

	page := hubapi.PageSpec{
		ListPath:      "campaigns",
		MoreKey:       "hasMore",
		OffsetKeys:    []string{"offset"},
		OffsetTargets: []string{"offset"},
	}
	pager, err := hubapi.NewPaginator(ctx, h.client, h.client.URL(hubapi.CampaignsAll), url.Values{"limit": []string{"500"}}, page)
	if err != nil {
		return err
	}

	for pager.Next() {
		row := pager.Record()
		data, err := h.client.Get(ctx, h.client.URL(hubapi.CampaignsDetail, formatID(row["id"])), nil)
		if err != nil {
			return err
		}
		record, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("unexpected campaigns detail payload %T", data)
		}
		if err := h.writer.Record(campaignsStream.Name, record); err != nil {
			return err
		}
	}
	if err := pager.Err(); err != nil {
		return err
	}

	return h.writer.State(h.state)
}
