package space

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/x-hunter/internal/session"
	"github.com/DjordjeVuckovic/x-hunter/internal/transport"
	"github.com/google/uuid"
)

const (
	mobileUserAgent = "Mozilla/5.0 (Linux; Android 11; Nokia G20) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.88 Mobile Safari/537.36"
	vendorID        = "m5-proxsee-login-a2011357b73e"

	// onboardingURL scopes the session cookies sent with the token request.
	onboardingURL = "https://api.twitter.com/1.1/onboarding/task.json"
)

// Endpoints are the three services the handshake talks to.
type Endpoints struct {
	AuthenticatePeriscope string
	LoginTwitterToken     string
	CreateBroadcast       string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		AuthenticatePeriscope: "https://x.com/i/api/graphql/r7VUmxbfqNkx7uwjgONSNw/AuthenticatePeriscope",
		LoginTwitterToken:     "https://proxsee.pscp.tv/api/v2/loginTwitterToken",
		CreateBroadcast:       "https://proxsee.pscp.tv/api/v2/createBroadcast",
	}
}

// Broadcast describes a created live-audio room.
type Broadcast struct {
	ID       string `json:"id"`
	ShareURL string `json:"share_url"`
	Status   string `json:"status"`
}

// Handshake creates broadcasts: it trades the session for a JWT, the JWT for a broadcast
// service cookie, and the cookie for a broadcast. Each step runs only if the previous one
// succeeded; nothing is retried here.
type Handshake struct {
	doer      transport.Doer
	endpoints Endpoints
	now       func() time.Time
}

type HandshakeOption func(*Handshake)

func NewHandshake(doer transport.Doer, opts ...HandshakeOption) *Handshake {
	h := &Handshake{
		doer:      doer,
		endpoints: DefaultEndpoints(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func WithEndpoints(e Endpoints) HandshakeOption {
	return func(h *Handshake) {
		h.endpoints = e
	}
}

func WithClock(now func() time.Time) HandshakeOption {
	return func(h *Handshake) {
		if now != nil {
			h.now = now
		}
	}
}

// Create runs the handshake and returns the new broadcast.
func (h *Handshake) Create(ctx context.Context, sess session.Session, overrides *Overrides) (*Broadcast, error) {
	traceID := uuid.NewString()
	log := slog.With("trace_id", traceID)

	log.Info("Acquiring broadcast token")
	jwt, err := h.acquireToken(ctx, sess)
	if err != nil {
		log.Error("Broadcast token request failed", "error", err)
		return nil, err
	}

	log.Info("Exchanging token for broadcast service cookie")
	cookie, err := h.exchangeCookie(ctx, jwt)
	if err != nil {
		log.Error("Broadcast cookie exchange failed", "error", err)
		return nil, err
	}

	payload := overrides.Apply(DefaultPayload())
	payload.Cookie = cookie

	log.Info("Creating broadcast")
	b, err := h.createBroadcast(ctx, payload)
	if err != nil {
		log.Error("Broadcast creation failed", "error", err)
		return nil, err
	}

	log.Info("Broadcast created", "broadcast_id", b.ID, "status", b.Status)
	return b, nil
}

func (h *Handshake) acquireToken(ctx context.Context, sess session.Session) (string, error) {
	const op = "space.acquire_token"

	header := http.Header{}
	header.Set("Authorization", "Bearer "+sess.BearerToken())
	header.Set("Cookie", sess.CookieString(onboardingURL))
	header.Set("Content-Type", "application/json")
	header.Set("User-Agent", mobileUserAgent)
	header.Set("X-Guest-Token", sess.GuestToken())
	header.Set("X-Twitter-Auth-Type", "OAuth2Client")
	header.Set("X-Twitter-Active-User", "yes")
	header.Set("X-Twitter-Client-Language", "en")
	header.Set("X-Csrf-Token", session.CookieValue(sess, onboardingURL, session.CSRFCookie))

	resp, err := h.doer.Do(ctx, &transport.Request{
		Method: http.MethodGet,
		URL:    h.endpoints.AuthenticatePeriscope + "?variables=%7B%7D",
		Header: header,
	})
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", apperr.Upstream(apperr.KindAuthExchangeFailed, op, resp.StatusCode, resp.Body)
	}

	var body struct {
		Data struct {
			AuthenticatePeriscope string `json:"authenticate_periscope"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", apperr.Wrap(apperr.KindResponseMalformed, op, err)
	}
	if body.Data.AuthenticatePeriscope == "" {
		return "", apperr.Malformed(op, "missing data.authenticate_periscope")
	}

	return body.Data.AuthenticatePeriscope, nil
}

func (h *Handshake) exchangeCookie(ctx context.Context, jwt string) (string, error) {
	const op = "space.exchange_cookie"

	reqBody, err := json.Marshal(map[string]any{
		"jwt":         jwt,
		"vendor_id":   vendorID,
		"create_user": true,
	})
	if err != nil {
		return "", apperr.Wrap(apperr.KindInvalidArgument, op, err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Sec-Ch-Ua", `"Chromium";v="130", "Google Chrome";v="130", "Not?ABrand";v="99"`)
	header.Set("Sec-Ch-Ua-Mobile", "?1")
	header.Set("Sec-Ch-Ua-Platform", `"Android"`)
	header.Set("X-Attempt", "1")
	header.Set("X-Idempotence", strconv.FormatInt(h.now().UnixMilli(), 10))
	header.Set("X-Periscope-User-Agent", "Twitter/m5")

	resp, err := h.doer.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    h.endpoints.LoginTwitterToken,
		Header: header,
		Body:   reqBody,
	})
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", apperr.Upstream(apperr.KindCookieExchangeFailed, op, resp.StatusCode, resp.Body)
	}

	var body struct {
		Cookie string `json:"cookie"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", apperr.Wrap(apperr.KindResponseMalformed, op, err)
	}
	if body.Cookie == "" {
		return "", apperr.Malformed(op, "missing cookie")
	}

	return body.Cookie, nil
}

func (h *Handshake) createBroadcast(ctx context.Context, payload BroadcastPayload) (*Broadcast, error) {
	const op = "space.create_broadcast"

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidArgument, op, err)
	}

	// Sent once: a replayed create can open a second live broadcast.
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("User-Agent", mobileUserAgent)

	resp, err := h.doer.Do(ctx, &transport.Request{
		Method:  http.MethodPost,
		URL:     h.endpoints.CreateBroadcast,
		Header:  header,
		Body:    reqBody,
		NoRetry: true,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apperr.Upstream(apperr.KindBroadcastCreateFailed, op, resp.StatusCode, resp.Body)
	}

	var body struct {
		Broadcast *struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"broadcast"`
		ShareURL string `json:"share_url"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, apperr.Wrap(apperr.KindResponseMalformed, op, err)
	}
	if body.Broadcast == nil || body.Broadcast.ID == "" {
		return nil, apperr.Malformed(op, "missing broadcast.id")
	}
	if body.Broadcast.Status == "" {
		return nil, apperr.Malformed(op, "missing broadcast.status")
	}

	return &Broadcast{
		ID:       body.Broadcast.ID,
		ShareURL: body.ShareURL,
		Status:   body.Broadcast.Status,
	}, nil
}
