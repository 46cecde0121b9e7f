package router

import (
	"context"
	"iter"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/x-hunter/internal/search"
	"github.com/DjordjeVuckovic/x-hunter/internal/timeline"
	"github.com/DjordjeVuckovic/x-hunter/pkg/pagination"
	"github.com/labstack/echo/v4"
)

const (
	defaultMaxResults = 20
	maxResultsLimit   = 500
)

// Searcher is the search surface the router serves.
type Searcher interface {
	SearchItems(ctx context.Context, term string, maxResults int, mode search.Mode) (iter.Seq2[timeline.Tweet, error], error)
	SearchProfiles(ctx context.Context, term string, maxResults int) (iter.Seq2[timeline.Profile, error], error)
}

// SearchResponse carries the items read before an upstream failure too; Error is then set.
type SearchResponse[T any] struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
	Count int    `json:"count"`
	Items []T    `json:"items"`
	Error string `json:"error,omitempty"`
}

type SearchRouter struct {
	e        *echo.Echo
	searcher Searcher
}

func NewSearchRouter(e *echo.Echo, searcher Searcher) *SearchRouter {
	return &SearchRouter{
		e:        e,
		searcher: searcher,
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/search", r.searchHandler)
	r.e.GET("/profiles", r.profilesHandler)
}

func (r *SearchRouter) searchHandler(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperr.NewValidation("q parameter is required")
	}

	mode, err := search.ParseMode(c.QueryParam("mode"))
	if err != nil {
		return apperr.NewValidationWrap("invalid mode", err)
	}
	if mode == search.ModeUsers {
		return apperr.NewValidation("use /profiles for user search")
	}

	maxResults, err := parseMax(c.QueryParam("max"))
	if err != nil {
		return err
	}

	seq, err := r.searcher.SearchItems(c.Request().Context(), query, maxResults, mode)
	if err != nil {
		return err
	}

	return respond(c, query, mode, seq)
}

func (r *SearchRouter) profilesHandler(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperr.NewValidation("q parameter is required")
	}

	maxResults, err := parseMax(c.QueryParam("max"))
	if err != nil {
		return err
	}

	seq, err := r.searcher.SearchProfiles(c.Request().Context(), query, maxResults)
	if err != nil {
		return err
	}

	return respond(c, query, search.ModeUsers, seq)
}

// respond drains seq. A failure before the first item is returned as the error; a later one
// is reported next to the partial result.
func respond[T any](c echo.Context, query string, mode search.Mode, seq iter.Seq2[T, error]) error {
	items, err := pagination.Collect(seq)
	if err != nil && len(items) == 0 {
		return err
	}

	resp := SearchResponse[T]{
		Query: query,
		Mode:  mode.String(),
		Count: len(items),
		Items: items,
	}
	if resp.Items == nil {
		resp.Items = []T{}
	}
	if err != nil {
		slog.Warn("Search ended early", "query", query, "items", len(items), "error", err)
		resp.Error = err.Error()
	}

	return c.JSON(http.StatusOK, resp)
}

func parseMax(s string) (int, error) {
	if s == "" {
		return defaultMaxResults, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.NewValidationWrap("max must be a number", err)
	}
	if n < 1 || n > maxResultsLimit {
		return 0, apperr.NewValidation("max must be between 1 and " + strconv.Itoa(maxResultsLimit))
	}
	return n, nil
}
