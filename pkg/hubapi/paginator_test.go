package hubapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamzip/tap-hubspot/pkg/auth"
)

// newTestClient wires a client and token manager against one test server,
// with retry sleeps disabled.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	mux.HandleFunc(TokenPath, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "test-token",
			"refresh_token": "rotated",
			"expires_in":    21600,
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	manager := auth.NewTokenManager(server.Client(), server.URL+TokenPath, auth.Credentials{RefreshToken: "seed"})
	client := NewClient(server.Client(), manager, "")
	client.BaseURL = server.URL
	client.retry.Sleep = func(time.Duration) {}
	return client
}

func TestPaginatorRejectsOffsetMismatchBeforeRequesting(t *testing.T) {
	mux := http.NewServeMux()
	requests := 0
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { requests++ })
	client := newTestClient(t, mux)

	_, err := NewPaginator(context.Background(), client, client.BaseURL+"/things", nil, PageSpec{
		ListPath:      "things",
		MoreKey:       "has-more",
		OffsetKeys:    []string{"vid-offset", "time-offset"},
		OffsetTargets: []string{"vidOffset"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 offset keys against 1 offset targets")
	assert.Zero(t, requests)
}

func TestPaginatorSinglePageTopLevelList(t *testing.T) {
	mux := http.NewServeMux()
	requests := 0
	mux.HandleFunc("/owners", func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode([]map[string]any{{"ownerId": 1}, {"ownerId": 2}})
	})
	client := newTestClient(t, mux)

	pager, err := NewPaginator(context.Background(), client, client.BaseURL+"/owners", nil, PageSpec{})
	require.NoError(t, err)

	var ids []any
	for pager.Next() {
		ids = append(ids, pager.Record()["ownerId"])
	}
	require.NoError(t, pager.Err())
	assert.Equal(t, []any{float64(1), float64(2)}, ids)
	assert.Equal(t, 1, requests)
}

func TestPaginatorFollowsSingleOffset(t *testing.T) {
	mux := http.NewServeMux()
	var offsets []string
	mux.HandleFunc("/deals", func(w http.ResponseWriter, r *http.Request) {
		offsets = append(offsets, r.URL.Query().Get("offset"))
		page := len(offsets)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"deals":   []map[string]any{{"dealId": page}},
			"hasMore": page < 3,
			"offset":  page * 100,
		})
	})
	client := newTestClient(t, mux)

	pager, err := NewPaginator(context.Background(), client, client.BaseURL+"/deals", nil, PageSpec{
		ListPath:      "deals",
		MoreKey:       "hasMore",
		OffsetKeys:    []string{"offset"},
		OffsetTargets: []string{"offset"},
	})
	require.NoError(t, err)

	count := 0
	for pager.Next() {
		count++
	}
	require.NoError(t, pager.Err())
	assert.Equal(t, 3, count)
	// first request carries no offset; later ones echo the response offset
	assert.Equal(t, []string{"", "100", "200"}, offsets)
}

func TestPaginatorAdvancesDualOffsetsTogether(t *testing.T) {
	mux := http.NewServeMux()
	type seen struct{ vid, time string }
	var requests []seen
	mux.HandleFunc("/contacts", func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, seen{r.URL.Query().Get("vidOffset"), r.URL.Query().Get("timeOffset")})
		page := len(requests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"contacts":    []map[string]any{{"vid": page}},
			"has-more":    page < 2,
			"vid-offset":  page * 10,
			"time-offset": 1583020800000 + int64(page),
		})
	})
	client := newTestClient(t, mux)

	pager, err := NewPaginator(context.Background(), client, client.BaseURL+"/contacts", url.Values{"count": []string{"100"}}, PageSpec{
		ListPath:      "contacts",
		MoreKey:       "has-more",
		OffsetKeys:    []string{"vid-offset", "time-offset"},
		OffsetTargets: []string{"vidOffset", "timeOffset"},
	})
	require.NoError(t, err)

	for pager.Next() {
	}
	require.NoError(t, pager.Err())
	require.Len(t, requests, 2)
	assert.Equal(t, seen{"", ""}, requests[0])
	assert.Equal(t, seen{"10", strconv.FormatInt(1583020800001, 10)}, requests[1])
}

func TestPaginatorErrorsWhenOffsetMissingWithMoreData(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/deals", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"deals":   []map[string]any{{"dealId": 1}},
			"hasMore": true,
		})
	})
	client := newTestClient(t, mux)

	pager, err := NewPaginator(context.Background(), client, client.BaseURL+"/deals", nil, PageSpec{
		ListPath:      "deals",
		MoreKey:       "hasMore",
		OffsetKeys:    []string{"offset"},
		OffsetTargets: []string{"offset"},
	})
	require.NoError(t, err)

	assert.False(t, pager.Next())
	require.Error(t, pager.Err())
	assert.Contains(t, pager.Err().Error(), `lacks offset field "offset"`)
}

func TestPaginatorStopsWhenMoreFlagAbsent(t *testing.T) {
	mux := http.NewServeMux()
	requests := 0
	mux.HandleFunc("/workflows", func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode(map[string]any{
			"workflows": []map[string]any{{"id": 1}},
		})
	})
	client := newTestClient(t, mux)

	pager, err := NewPaginator(context.Background(), client, client.BaseURL+"/workflows", nil, PageSpec{ListPath: "workflows"})
	require.NoError(t, err)

	count := 0
	for pager.Next() {
		count++
	}
	require.NoError(t, pager.Err())
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, requests)
}
