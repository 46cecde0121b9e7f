package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultCookieDomain = ".x.com"
	defaultCookiePath   = "/"
)

// ExportedCookie is one entry of a browser cookie export (cookies.json).
type ExportedCookie struct {
	Name           string   `json:"name"`
	Key            string   `json:"key"`
	Value          *string  `json:"value"`
	Domain         string   `json:"domain"`
	Path           string   `json:"path"`
	Secure         *bool    `json:"secure"`
	HttpOnly       *bool    `json:"httpOnly"`
	SameSite       string   `json:"sameSite"`
	ExpirationDate *float64 `json:"expirationDate"`
}

// LoadCookieFile reads a cookies.json export from path.
func LoadCookieFile(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cookie file: %w", err)
	}
	defer f.Close()

	return LoadCookies(f)
}

// LoadCookies decodes a JSON array of exported cookies and normalizes each entry.
func LoadCookies(r io.Reader) ([]*http.Cookie, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("cookies file must be an array of cookie entries: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(raw))
	for i, entry := range raw {
		if trimmed := bytes.TrimSpace(entry); len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, fmt.Errorf("cookie at index %d is not an object", i)
		}
		var ec ExportedCookie
		if err := json.Unmarshal(entry, &ec); err != nil {
			return nil, fmt.Errorf("cookie at index %d is not an object: %w", i, err)
		}
		c, err := ec.toCookie(i)
		if err != nil {
			return nil, err
		}
		cookies = append(cookies, c)
	}

	return cookies, nil
}

func (ec ExportedCookie) toCookie(index int) (*http.Cookie, error) {
	name := ec.Name
	if name == "" {
		name = ec.Key
	}
	if name == "" {
		return nil, fmt.Errorf("cookie at index %d is missing a name/key field", index)
	}
	if ec.Value == nil {
		return nil, fmt.Errorf("cookie %s is missing a value", name)
	}

	c := &http.Cookie{
		Name:     name,
		Value:    *ec.Value,
		Domain:   ec.Domain,
		Path:     ec.Path,
		Secure:   true,
		SameSite: normalizeSameSite(ec.SameSite),
	}
	if c.Domain == "" {
		c.Domain = defaultCookieDomain
	}
	if c.Path == "" {
		c.Path = defaultCookiePath
	}
	if ec.Secure != nil {
		c.Secure = *ec.Secure
	}
	if ec.HttpOnly != nil {
		c.HttpOnly = *ec.HttpOnly
	}
	if ec.ExpirationDate != nil {
		c.Expires = normalizeExpiration(*ec.ExpirationDate)
	}

	return c, nil
}

func normalizeSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none", "no_restriction", "unspecified":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteDefaultMode
	}
}

// normalizeExpiration accepts seconds or milliseconds since the epoch.
func normalizeExpiration(v float64) time.Time {
	if v > 1_000_000_000_000 {
		return time.UnixMilli(int64(v)).UTC()
	}
	return time.Unix(int64(v), 0).UTC()
}
