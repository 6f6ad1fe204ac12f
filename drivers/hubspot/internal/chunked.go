package driver

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/streamzip/tap-hubspot/constants"
	"github.com/streamzip/tap-hubspot/pkg/hubapi"
	"github.com/streamzip/tap-hubspot/types"
	"github.com/streamzip/tap-hubspot/utils/typeutils"
)

func (h *Hubspot) syncSubscriptionChanges(ctx context.Context) error {
	return h.syncChunked(ctx, subscriptionChangesStream, hubapi.SubscriptionChanges, "timeline", constants.SubscriptionChangesChunkMS)
}

func (h *Hubspot) syncEmailEvents(ctx context.Context) error {
	return h.syncChunked(ctx, emailEventsStream, hubapi.EmailEvents, "events", constants.EmailEventsChunkMS)
}

// syncChunked walks an event stream in fixed-width time windows. Every
// record in a window is emitted without filtering; the watermark jumps to
// the window's end once the window is fully drained, so an interrupted run
// resumes at the last completed window.
func (h *Hubspot) syncChunked(ctx context.Context, stream types.Stream, endpoint hubapi.Endpoint, listPath string, chunkMS int64) error {
	lastSync, err := typeutils.ReformatTimestamp(h.state.Watermark(stream.Name, h.config.StartDate))
	if err != nil {
		return fmt.Errorf("bad %s watermark: %s", stream.Name, err)
	}

	schema, err := h.loadSchema(ctx, stream.Name)
	if err != nil {
		return err
	}
	if err := h.writer.Schema(stream.Name, schema, stream.KeyProperties); err != nil {
		return err
	}

	windows := hubapi.NewWindows(typeutils.ToUnixMS(lastSync), typeutils.ToUnixMS(h.now().UTC()), chunkMS)
	for windows.Next() {
		win := windows.Current()
		params := url.Values{
			"startTimestamp": []string{strconv.FormatInt(win.Start, 10)},
			"endTimestamp":   []string{strconv.FormatInt(win.End, 10)},
			"limit":          []string{strconv.Itoa(constants.ChunkedPageLimit)},
		}
		page := hubapi.PageSpec{
			ListPath:      listPath,
			MoreKey:       "hasMore",
			OffsetKeys:    []string{"offset"},
			OffsetTargets: []string{"offset"},
		}
		pager, err := hubapi.NewPaginator(ctx, h.client, h.client.URL(endpoint), params, page)
		if err != nil {
			return err
		}
		for pager.Next() {
			if err := h.writer.Record(stream.Name, pager.Record()); err != nil {
				return err
			}
		}
		if err := pager.Err(); err != nil {
			return err
		}

		h.state.Set(stream.Name, typeutils.FormatTimestamp(typeutils.UnixMS(win.End)))
		if err := h.writer.State(h.state); err != nil {
			return err
		}
	}

	return nil
}
