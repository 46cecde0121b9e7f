package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// LoginChecker is the part of a platform session a health check needs.
type LoginChecker interface {
	IsLoggedIn() bool
}

// SessionHealthChecker is healthy while its session still holds login cookies.
type SessionHealthChecker struct {
	session LoginChecker
}

func NewSessionHealthChecker(s LoginChecker) *SessionHealthChecker {
	return &SessionHealthChecker{session: s}
}

func (hc *SessionHealthChecker) Healthy(ctx context.Context) bool {
	return ctx.Err() == nil && hc.session.IsLoggedIn()
}
