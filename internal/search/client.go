package search

import (
	"context"
	"iter"
	"log/slog"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/x-hunter/internal/session"
	"github.com/DjordjeVuckovic/x-hunter/internal/timeline"
	"github.com/DjordjeVuckovic/x-hunter/internal/transport"
	"github.com/DjordjeVuckovic/x-hunter/pkg/pagination"
)

// Client runs paginated searches on behalf of one session.
type Client struct {
	session  session.Session
	doer     transport.Doer
	endpoint string
	pageOpts []pagination.Option
}

type ClientOption func(*Client)

func NewClient(sess session.Session, doer transport.Doer, opts ...ClientOption) *Client {
	c := &Client{
		session:  sess,
		doer:     doer,
		endpoint: DefaultEndpoint,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithStopRule replaces the end-of-data rule used by every search of the client.
func WithStopRule(rule pagination.StopRule) ClientOption {
	return func(c *Client) {
		c.pageOpts = append(c.pageOpts, pagination.WithStopRule(rule))
	}
}

// SearchItems returns a lazy sequence of at most maxResults tweets matching term. Arguments
// and the session are checked before anything is fetched.
//
// ModeUsers is rejected with an invalid-argument error: a users search yields profiles, not
// tweets, so it goes through SearchProfiles.
func (c *Client) SearchItems(ctx context.Context, term string, maxResults int, mode Mode) (iter.Seq2[timeline.Tweet, error], error) {
	const op = "search.search_items"
	if mode == ModeUsers {
		return nil, apperr.InvalidArgument(op, "users mode yields profiles, use SearchProfiles")
	}
	if err := c.check(op, term, maxResults); err != nil {
		return nil, err
	}

	slog.Debug("Starting search", "term", term, "mode", mode.String(), "max", maxResults)
	fetcher := NewTweetFetcher(c.endpoint, mode, c.session, c.doer)

	return pagination.Paginate(ctx, term, maxResults, fetcher, c.pageOpts...), nil
}

// SearchProfiles returns a lazy sequence of at most maxResults profiles matching term.
func (c *Client) SearchProfiles(ctx context.Context, term string, maxResults int) (iter.Seq2[timeline.Profile, error], error) {
	const op = "search.search_profiles"
	if err := c.check(op, term, maxResults); err != nil {
		return nil, err
	}

	slog.Debug("Starting profile search", "term", term, "max", maxResults)
	fetcher := NewProfileFetcher(c.endpoint, c.session, c.doer)

	return pagination.Paginate(ctx, term, maxResults, fetcher, c.pageOpts...), nil
}

func (c *Client) check(op, term string, maxResults int) error {
	if term == "" {
		return apperr.InvalidArgument(op, "term must not be empty")
	}
	if maxResults <= 0 {
		return apperr.InvalidArgument(op, "max results must be positive")
	}
	if !c.session.IsLoggedIn() {
		return apperr.NotAuthenticated(op)
	}
	return nil
}
