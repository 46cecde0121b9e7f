package router

import (
	"context"
	"net/http"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/x-hunter/internal/session"
	"github.com/DjordjeVuckovic/x-hunter/internal/space"
	"github.com/labstack/echo/v4"
)

// BroadcastCreator creates a live-audio broadcast for a session.
type BroadcastCreator interface {
	Create(ctx context.Context, sess session.Session, overrides *space.Overrides) (*space.Broadcast, error)
}

type SpaceRouter struct {
	e       *echo.Echo
	creator BroadcastCreator
	session session.Session
}

func NewSpaceRouter(e *echo.Echo, creator BroadcastCreator, sess session.Session) *SpaceRouter {
	return &SpaceRouter{
		e:       e,
		creator: creator,
		session: sess,
	}
}

func (r *SpaceRouter) Bind() {
	r.e.POST("/spaces", r.createHandler)
}

func (r *SpaceRouter) createHandler(c echo.Context) error {
	var overrides space.Overrides
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&overrides); err != nil {
			return apperr.NewValidationWrap("invalid broadcast overrides", err)
		}
	}

	b, err := r.creator.Create(c.Request().Context(), r.session, &overrides)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, b)
}
