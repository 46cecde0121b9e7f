package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/x-hunter/internal/session"
	"github.com/DjordjeVuckovic/x-hunter/internal/transport"
	"github.com/DjordjeVuckovic/x-hunter/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timelineDoer serves a corpus of tweet ids in pages of at most pageSize, using the page
// offset as the cursor.
type timelineDoer struct {
	mu       sync.Mutex
	total    int
	pageSize int
	status   int
	requests []*transport.Request
}

func (d *timelineDoer) Do(_ context.Context, req *transport.Request) (*transport.Response, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = append(d.requests, req)

	if d.status != 0 {
		return &transport.Response{StatusCode: d.status, Body: []byte(`{"errors":[{"message":"denied"}]}`)}, nil
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}
	var vars struct {
		Count  int    `json:"count"`
		Cursor string `json:"cursor"`
	}
	if err := json.Unmarshal([]byte(u.Query().Get("variables")), &vars); err != nil {
		return nil, err
	}

	offset, _ := strconv.Atoi(vars.Cursor)
	end := min(offset+min(vars.Count, d.pageSize), d.total)

	var entries []string
	for i := offset; i < end; i++ {
		entries = append(entries, fmt.Sprintf(
			`{"entryId":"tweet-%[1]d","content":{"itemContent":{"tweet_results":{"result":{"__typename":"Tweet","rest_id":"%[1]d","legacy":{"full_text":"tweet %[1]d"}}}}}}`, i))
	}
	entries = append(entries, fmt.Sprintf(
		`{"entryId":"cursor-bottom","content":{"cursorType":"Bottom","value":"%d"}}`, end))

	body := `{"data":{"search_by_raw_query":{"search_timeline":{"timeline":{"instructions":[{"type":"TimelineAddEntries","entries":[` +
		strings.Join(entries, ",") + `]}]}}}}}`

	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

func (d *timelineDoer) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func loggedInSession(t *testing.T) session.Session {
	t.Helper()
	sess, err := session.NewCookieSession([]*http.Cookie{
		{Name: session.AuthTokenCookie, Value: "auth", Domain: ".x.com", Path: "/", Secure: true},
		{Name: session.CSRFCookie, Value: "csrf", Domain: ".x.com", Path: "/", Secure: true},
	})
	require.NoError(t, err)
	return sess
}

func loggedOutSession(t *testing.T) session.Session {
	t.Helper()
	sess, err := session.NewCookieSession(nil)
	require.NoError(t, err)
	return sess
}

func TestClient_SearchItems_BoundedByMaxResults(t *testing.T) {
	doer := &timelineDoer{total: 10, pageSize: 4}
	client := NewClient(loggedInSession(t), doer)

	seq, err := client.SearchItems(context.Background(), "golang", 10, ModeLatest)
	require.NoError(t, err)
	tweets, err := pagination.Collect(seq)

	require.NoError(t, err)
	require.Len(t, tweets, 10)
	for i, tw := range tweets {
		assert.Equal(t, strconv.Itoa(i), tw.ID)
	}
	assert.Equal(t, 3, doer.calls())
}

func TestClient_SearchItems_FewerThanAvailable(t *testing.T) {
	doer := &timelineDoer{total: 10, pageSize: 4}
	client := NewClient(loggedInSession(t), doer)

	seq, err := client.SearchItems(context.Background(), "golang", 2, ModeTop)
	require.NoError(t, err)
	tweets, err := pagination.Collect(seq)

	require.NoError(t, err)
	assert.Len(t, tweets, 2)
	assert.Equal(t, 1, doer.calls())
}

func TestClient_SearchItems_CorpusExhausted(t *testing.T) {
	doer := &timelineDoer{total: 5, pageSize: 4}
	client := NewClient(loggedInSession(t), doer)

	seq, err := client.SearchItems(context.Background(), "golang", 50, ModeTop)
	require.NoError(t, err)
	tweets, err := pagination.Collect(seq)

	require.NoError(t, err)
	assert.Len(t, tweets, 5)
	assert.Equal(t, 3, doer.calls(), "the third page is empty and ends the sequence")
}

func TestClient_SearchItems_RequestShape(t *testing.T) {
	doer := &timelineDoer{total: 10, pageSize: 4}
	client := NewClient(loggedInSession(t), doer, WithEndpoint("https://example.test/SearchTimeline"))

	seq, err := client.SearchItems(context.Background(), "go lang", 6, ModePhotos)
	require.NoError(t, err)
	_, err = pagination.Collect(seq)
	require.NoError(t, err)

	require.Len(t, doer.requests, 2)
	first := doer.requests[0]
	assert.Equal(t, http.MethodGet, first.Method)
	assert.True(t, strings.HasPrefix(first.URL, "https://example.test/SearchTimeline?"))
	assert.Equal(t, "Bearer "+session.DefaultBearerToken, first.Header.Get("Authorization"))
	assert.Equal(t, "csrf", first.Header.Get("X-Csrf-Token"))
	assert.Contains(t, first.Header.Get("Cookie"), "auth_token=auth")
	assert.Equal(t, "OAuth2Session", first.Header.Get("X-Twitter-Auth-Type"))
	assert.Equal(t, "yes", first.Header.Get("X-Twitter-Active-User"))
	assert.Equal(t, "https://x.com/search?q=go%20lang&src=typed_query", first.Header.Get("Referer"))
	assert.Equal(t, DefaultUserAgent, first.Header.Get("User-Agent"))

	firstURL, err := url.Parse(first.URL)
	require.NoError(t, err)
	assert.NotContains(t, firstURL.Query().Get("variables"), "cursor")
	assert.Contains(t, firstURL.Query().Get("variables"), `"product":"Photos"`)
	assert.Contains(t, firstURL.Query().Get("variables"), `"count":6`)

	secondURL, err := url.Parse(doer.requests[1].URL)
	require.NoError(t, err)
	assert.Contains(t, secondURL.Query().Get("variables"), `"cursor":"4"`)
	assert.Contains(t, secondURL.Query().Get("variables"), `"count":2`)
}

func TestClient_SearchProfiles_UsesPeopleProduct(t *testing.T) {
	doer := &timelineDoer{total: 3, pageSize: 3}
	client := NewClient(loggedInSession(t), doer)

	seq, err := client.SearchProfiles(context.Background(), "gophers", 3)
	require.NoError(t, err)
	profiles, err := pagination.Collect(seq)

	require.NoError(t, err)
	assert.Empty(t, profiles, "tweet entries carry no users")
	require.Equal(t, 1, doer.calls())
	u, err := url.Parse(doer.requests[0].URL)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("variables"), `"product":"People"`)
}

func TestClient_InvalidArguments(t *testing.T) {
	doer := &timelineDoer{total: 10, pageSize: 4}
	client := NewClient(loggedInSession(t), doer)
	ctx := context.Background()

	_, err := client.SearchItems(ctx, "golang", 0, ModeTop)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = client.SearchItems(ctx, "golang", -3, ModeTop)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = client.SearchItems(ctx, "", 5, ModeTop)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = client.SearchItems(ctx, "golang", 5, ModeUsers)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = client.SearchProfiles(ctx, "golang", 0)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	assert.Equal(t, 0, doer.calls())
}

func TestClient_NotAuthenticated(t *testing.T) {
	doer := &timelineDoer{total: 10, pageSize: 4}
	client := NewClient(loggedOutSession(t), doer)

	_, err := client.SearchItems(context.Background(), "golang", 5, ModeTop)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	_, err = client.SearchProfiles(context.Background(), "golang", 5)
	assert.ErrorIs(t, err, apperr.ErrNotAuthenticated)

	assert.Equal(t, 0, doer.calls())
}

func TestClient_UpstreamRejected(t *testing.T) {
	doer := &timelineDoer{status: http.StatusForbidden}
	client := NewClient(loggedInSession(t), doer)

	seq, err := client.SearchItems(context.Background(), "golang", 5, ModeTop)
	require.NoError(t, err)
	tweets, err := pagination.Collect(seq)

	assert.Empty(t, tweets)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUpstreamRejected)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
	assert.Contains(t, appErr.Body, "denied")
}

func TestClient_ConsumerBreakStopsFetching(t *testing.T) {
	doer := &timelineDoer{total: 100, pageSize: 4}
	client := NewClient(loggedInSession(t), doer)

	seq, err := client.SearchItems(context.Background(), "golang", 100, ModeTop)
	require.NoError(t, err)

	n := 0
	for _, err := range seq {
		require.NoError(t, err)
		n++
		if n == 5 {
			break
		}
	}

	assert.Equal(t, 5, n)
	assert.Equal(t, 2, doer.calls())
}
