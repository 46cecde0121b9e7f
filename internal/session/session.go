package session

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DefaultBearerToken is the public bearer credential of the platform's web client.
const DefaultBearerToken = "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"

const (
	AuthTokenCookie = "auth_token"
	CSRFCookie      = "ct0"
)

// Session is an already-authenticated platform session. Implementations must be safe for
// concurrent reads; nothing in this module mutates a session.
type Session interface {
	IsLoggedIn() bool
	Cookies(rawURL string) []*http.Cookie
	CookieString(rawURL string) string
	BearerToken() string
	GuestToken() string
}

// CookieSession is a Session backed by a cookie jar seeded from exported browser cookies.
type CookieSession struct {
	jar         *cookiejar.Jar
	bearerToken string
	guestToken  string
}

type Option func(*CookieSession)

func WithBearerToken(token string) Option {
	return func(s *CookieSession) {
		if token != "" {
			s.bearerToken = token
		}
	}
}

func WithGuestToken(token string) Option {
	return func(s *CookieSession) {
		s.guestToken = token
	}
}

// platformHosts are the hosts a session cookie is valid on; the platform serves both.
var platformHosts = []string{"x.com", "twitter.com"}

func NewCookieSession(cookies []*http.Cookie, opts ...Option) (*CookieSession, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	s := &CookieSession{
		jar:         jar,
		bearerToken: DefaultBearerToken,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, c := range cookies {
		for _, host := range cookieHosts(c.Domain) {
			mirrored := *c
			if isPlatformHost(strings.TrimPrefix(c.Domain, ".")) {
				mirrored.Domain = "." + host
			}
			jar.SetCookies(&url.URL{Scheme: "https", Host: host, Path: "/"}, []*http.Cookie{&mirrored})
		}
	}

	return s, nil
}

func cookieHosts(domain string) []string {
	host := strings.TrimPrefix(domain, ".")
	if host == "" {
		host = platformHosts[0]
	}
	if isPlatformHost(host) {
		return platformHosts
	}
	return []string{host}
}

func isPlatformHost(host string) bool {
	for _, h := range platformHosts {
		if host == h {
			return true
		}
	}
	return false
}

// IsLoggedIn reports whether the jar holds both the auth token and the CSRF token.
func (s *CookieSession) IsLoggedIn() bool {
	var hasAuth, hasCSRF bool
	for _, c := range s.Cookies("https://x.com/") {
		switch c.Name {
		case AuthTokenCookie:
			hasAuth = c.Value != ""
		case CSRFCookie:
			hasCSRF = c.Value != ""
		}
	}
	return hasAuth && hasCSRF
}

func (s *CookieSession) Cookies(rawURL string) []*http.Cookie {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return s.jar.Cookies(u)
}

// CookieString renders the cookies for rawURL as a Cookie header value.
func (s *CookieSession) CookieString(rawURL string) string {
	cookies := s.Cookies(rawURL)
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

func (s *CookieSession) BearerToken() string {
	return s.bearerToken
}

func (s *CookieSession) GuestToken() string {
	return s.guestToken
}

// CookieValue returns the value of the named cookie for rawURL, or "".
func CookieValue(s Session, rawURL, name string) string {
	for _, c := range s.Cookies(rawURL) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
