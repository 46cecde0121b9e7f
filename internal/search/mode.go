package search

import (
	"fmt"
	"strings"
)

// Mode selects the upstream search product.
type Mode int

const (
	ModeTop Mode = iota
	ModeLatest
	ModePhotos
	ModeVideos
	ModeUsers
)

// Product is the upstream product name for the mode. Unknown modes fall back to Top.
func (m Mode) Product() string {
	switch m {
	case ModeLatest:
		return "Latest"
	case ModePhotos:
		return "Photos"
	case ModeVideos:
		return "Videos"
	case ModeUsers:
		return "People"
	default:
		return "Top"
	}
}

func (m Mode) String() string {
	switch m {
	case ModeTop:
		return "top"
	case ModeLatest:
		return "latest"
	case ModePhotos:
		return "photos"
	case ModeVideos:
		return "videos"
	case ModeUsers:
		return "users"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. An empty name is Top.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "top":
		return ModeTop, nil
	case "latest":
		return ModeLatest, nil
	case "photos":
		return ModePhotos, nil
	case "videos":
		return ModeVideos, nil
	case "users", "people":
		return ModeUsers, nil
	default:
		return ModeTop, fmt.Errorf("unknown search mode %q", s)
	}
}
