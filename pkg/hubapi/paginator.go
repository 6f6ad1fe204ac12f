package hubapi

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/streamzip/tap-hubspot/types"
)

var _ types.Iterable = (*Paginator)(nil)

// PageSpec is one endpoint's pagination convention: where the entity list
// lives in the response, which flag signals more data, and which offset
// fields echo back into the next request's parameters. Some endpoints need
// two independent cursors (an identity offset and a time offset) advanced
// together, hence the parallel key/target lists.
type PageSpec struct {
	ListPath      string
	MoreKey       string
	OffsetKeys    []string
	OffsetTargets []string
}

// Paginator drives repeated requests against one endpoint, producing a lazy,
// finite, non restartable sequence of raw entity records.
type Paginator struct {
	ctx    context.Context
	client *Client
	url    string
	params url.Values
	spec   PageSpec

	page    []any
	index   int
	done    bool
	err     error
	current map[string]any
}

// NewPaginator validates the offset configuration before any request is
// issued; a key/target count mismatch is a configuration error.
func NewPaginator(ctx context.Context, client *Client, requestURL string, params url.Values, spec PageSpec) (*Paginator, error) {
	if len(spec.OffsetKeys) != len(spec.OffsetTargets) {
		return nil, fmt.Errorf("pagination config for %s: %d offset keys against %d offset targets",
			requestURL, len(spec.OffsetKeys), len(spec.OffsetTargets))
	}

	// own copy; offsets mutate the params between pages
	owned := url.Values{}
	for key, values := range params {
		owned[key] = append([]string(nil), values...)
	}

	return &Paginator{
		ctx:    ctx,
		client: client,
		url:    requestURL,
		params: owned,
		spec:   spec,
	}, nil
}

// Next advances to the next record, fetching further pages as needed.
// Records are yielded in response order.
func (p *Paginator) Next() bool {
	if p.err != nil {
		return false
	}

	for {
		if p.index < len(p.page) {
			row, ok := p.page[p.index].(map[string]any)
			if !ok {
				p.err = fmt.Errorf("unexpected non-object row in response from %s", p.url)
				return false
			}
			p.current = row
			p.index++
			return true
		}

		if p.done {
			return false
		}
		if err := p.fetchPage(); err != nil {
			p.err = err
			return false
		}
	}
}

// Record returns the row Next advanced to.
func (p *Paginator) Record() map[string]any {
	return p.current
}

func (p *Paginator) Err() error {
	return p.err
}

func (p *Paginator) fetchPage() error {
	data, err := p.client.Get(p.ctx, p.url, p.params)
	if err != nil {
		return err
	}
	p.index = 0

	// no declared list path: the entire payload is the entity list and the
	// endpoint has a single page
	if p.spec.ListPath == "" {
		rows, ok := data.([]any)
		if !ok {
			return fmt.Errorf("expected top-level list from %s, got %T", p.url, data)
		}
		p.page = rows
		p.done = true
		return nil
	}

	body, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("expected object response from %s, got %T", p.url, data)
	}
	rows, ok := body[p.spec.ListPath].([]any)
	if !ok {
		return fmt.Errorf("response from %s missing entity list at %q", p.url, p.spec.ListPath)
	}
	p.page = rows

	more, _ := body[p.spec.MoreKey].(bool)
	if !more {
		p.done = true
		return nil
	}

	for i, key := range p.spec.OffsetKeys {
		offset, found := body[key]
		if !found {
			return fmt.Errorf("response from %s signals more data but lacks offset field %q", p.url, key)
		}
		p.params.Set(p.spec.OffsetTargets[i], formatOffset(offset))
	}
	return nil
}

// formatOffset renders an echoed offset value as a query parameter; JSON
// numbers arrive as float64 and must not be printed in exponent form.
func formatOffset(value any) string {
	if f, ok := value.(float64); ok && f == math.Trunc(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(value)
}
