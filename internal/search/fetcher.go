package search

import (
	"context"
	"net/http"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/x-hunter/internal/session"
	"github.com/DjordjeVuckovic/x-hunter/internal/timeline"
	"github.com/DjordjeVuckovic/x-hunter/internal/transport"
	"github.com/DjordjeVuckovic/x-hunter/pkg/pagination"
)

const (
	DefaultEndpoint  = "https://x.com/i/api/graphql/7r8ibjHuK3MWUyzkzHNMYQ/SearchTimeline"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

	// cookieURL is where session cookies are looked up for search requests.
	cookieURL = "https://x.com/"
)

// timelineFetcher performs one SearchTimeline round trip and parses the body with parse.
type timelineFetcher[T any] struct {
	endpoint string
	mode     Mode
	session  session.Session
	doer     transport.Doer
	parse    func([]byte) (*pagination.Page[T], error)
}

func (f *timelineFetcher[T]) FetchPage(ctx context.Context, req pagination.CursorRequest) (*pagination.Page[T], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var cursor string
	if req.HasCursor() {
		cursor = *req.Cursor
	}

	q, err := BuildQuery(req.Term, req.Size, f.mode, cursor)
	if err != nil {
		return nil, err
	}
	values, err := q.Values()
	if err != nil {
		return nil, err
	}

	resp, err := f.doer.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    f.endpoint + "?" + values.Encode(),
		Header: f.headers(q),
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apperr.Upstream(apperr.KindUpstreamRejected, "search.fetch_page", resp.StatusCode, resp.Body)
	}

	return f.parse(resp.Body)
}

func (f *timelineFetcher[T]) headers(q *Query) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+f.session.BearerToken())
	h.Set("Cookie", f.session.CookieString(cookieURL))
	h.Set("X-Csrf-Token", session.CookieValue(f.session, cookieURL, session.CSRFCookie))
	h.Set("X-Twitter-Auth-Type", "OAuth2Session")
	h.Set("X-Twitter-Active-User", "yes")
	h.Set("Referer", q.Referer())
	h.Set("User-Agent", DefaultUserAgent)
	if gt := f.session.GuestToken(); gt != "" {
		h.Set("X-Guest-Token", gt)
	}
	return h
}

// NewTweetFetcher fetches content pages for the given mode.
func NewTweetFetcher(endpoint string, mode Mode, sess session.Session, doer transport.Doer) pagination.Fetcher[timeline.Tweet] {
	return &timelineFetcher[timeline.Tweet]{
		endpoint: endpoint,
		mode:     mode,
		session:  sess,
		doer:     doer,
		parse:    timeline.ParseTweets,
	}
}

// NewProfileFetcher fetches user pages; the product is always People.
func NewProfileFetcher(endpoint string, sess session.Session, doer transport.Doer) pagination.Fetcher[timeline.Profile] {
	return &timelineFetcher[timeline.Profile]{
		endpoint: endpoint,
		mode:     ModeUsers,
		session:  sess,
		doer:     doer,
		parse:    timeline.ParseProfiles,
	}
}
