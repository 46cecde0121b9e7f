package space

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BroadcastPayload is the createBroadcast request body.
type BroadcastPayload struct {
	AppComponent                string   `json:"app_component"`
	ContentType                 string   `json:"content_type"`
	ConversationControls        int      `json:"conversation_controls"`
	Description                 string   `json:"description"`
	Height                      int      `json:"height"`
	Is360                       bool     `json:"is_360"`
	IsSpaceAvailableForClipping bool     `json:"is_space_available_for_clipping"`
	IsSpaceAvailableForReplay   bool     `json:"is_space_available_for_replay"`
	IsWebRTC                    bool     `json:"is_webrtc"`
	Languages                   []string `json:"languages"`
	NarrowCastSpaceType         int      `json:"narrow_cast_space_type"`
	Region                      string   `json:"region"`
	ReplaykitAppBundle          string   `json:"replaykit_app_bundle"`
	ReplaykitAppName            string   `json:"replaykit_app_name"`
	RequiresPSPVersion          []any    `json:"requires_psp_version"`
	ScheduledStartTime          int64    `json:"scheduled_start_time"`
	Source                      string   `json:"source"`
	TicketGroupID               string   `json:"ticket_group_id"`
	TicketsTotal                int      `json:"tickets_total"`
	Topics                      []any    `json:"topics"`
	Width                       int      `json:"width"`
	Cookie                      string   `json:"cookie"`
}

// DefaultPayload is the broadcast the service creates when the caller overrides nothing.
func DefaultPayload() BroadcastPayload {
	return BroadcastPayload{
		AppComponent:       "audio-room",
		ContentType:        "visual_audio",
		Height:             1080,
		IsWebRTC:           true,
		Languages:          []string{},
		Region:             "us-east-1",
		RequiresPSPVersion: []any{},
		Source:             "web",
		Topics:             []any{},
		Width:              1920,
	}
}

// Overrides replaces default payload fields one by one; nil fields keep the default.
// Cookie is accepted for symmetry with the payload but always replaced by the service cookie.
type Overrides struct {
	AppComponent                *string   `json:"app_component,omitempty" yaml:"app_component,omitempty"`
	ContentType                 *string   `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	ConversationControls        *int      `json:"conversation_controls,omitempty" yaml:"conversation_controls,omitempty"`
	Description                 *string   `json:"description,omitempty" yaml:"description,omitempty"`
	Height                      *int      `json:"height,omitempty" yaml:"height,omitempty"`
	Is360                       *bool     `json:"is_360,omitempty" yaml:"is_360,omitempty"`
	IsSpaceAvailableForClipping *bool     `json:"is_space_available_for_clipping,omitempty" yaml:"is_space_available_for_clipping,omitempty"`
	IsSpaceAvailableForReplay   *bool     `json:"is_space_available_for_replay,omitempty" yaml:"is_space_available_for_replay,omitempty"`
	IsWebRTC                    *bool     `json:"is_webrtc,omitempty" yaml:"is_webrtc,omitempty"`
	Languages                   *[]string `json:"languages,omitempty" yaml:"languages,omitempty"`
	NarrowCastSpaceType         *int      `json:"narrow_cast_space_type,omitempty" yaml:"narrow_cast_space_type,omitempty"`
	Region                      *string   `json:"region,omitempty" yaml:"region,omitempty"`
	ReplaykitAppBundle          *string   `json:"replaykit_app_bundle,omitempty" yaml:"replaykit_app_bundle,omitempty"`
	ReplaykitAppName            *string   `json:"replaykit_app_name,omitempty" yaml:"replaykit_app_name,omitempty"`
	RequiresPSPVersion          *[]any    `json:"requires_psp_version,omitempty" yaml:"requires_psp_version,omitempty"`
	ScheduledStartTime          *int64    `json:"scheduled_start_time,omitempty" yaml:"scheduled_start_time,omitempty"`
	Source                      *string   `json:"source,omitempty" yaml:"source,omitempty"`
	TicketGroupID               *string   `json:"ticket_group_id,omitempty" yaml:"ticket_group_id,omitempty"`
	TicketsTotal                *int      `json:"tickets_total,omitempty" yaml:"tickets_total,omitempty"`
	Topics                      *[]any    `json:"topics,omitempty" yaml:"topics,omitempty"`
	Width                       *int      `json:"width,omitempty" yaml:"width,omitempty"`
	Cookie                      *string   `json:"cookie,omitempty" yaml:"cookie,omitempty"`
}

// Apply overlays o onto base. A nil receiver returns base unchanged.
func (o *Overrides) Apply(base BroadcastPayload) BroadcastPayload {
	if o == nil {
		return base
	}

	set(&base.AppComponent, o.AppComponent)
	set(&base.ContentType, o.ContentType)
	set(&base.ConversationControls, o.ConversationControls)
	set(&base.Description, o.Description)
	set(&base.Height, o.Height)
	set(&base.Is360, o.Is360)
	set(&base.IsSpaceAvailableForClipping, o.IsSpaceAvailableForClipping)
	set(&base.IsSpaceAvailableForReplay, o.IsSpaceAvailableForReplay)
	set(&base.IsWebRTC, o.IsWebRTC)
	set(&base.Languages, o.Languages)
	set(&base.NarrowCastSpaceType, o.NarrowCastSpaceType)
	set(&base.Region, o.Region)
	set(&base.ReplaykitAppBundle, o.ReplaykitAppBundle)
	set(&base.ReplaykitAppName, o.ReplaykitAppName)
	set(&base.RequiresPSPVersion, o.RequiresPSPVersion)
	set(&base.ScheduledStartTime, o.ScheduledStartTime)
	set(&base.Source, o.Source)
	set(&base.TicketGroupID, o.TicketGroupID)
	set(&base.TicketsTotal, o.TicketsTotal)
	set(&base.Topics, o.Topics)
	set(&base.Width, o.Width)
	set(&base.Cookie, o.Cookie)

	return base
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// LoadOverrides reads broadcast overrides from a YAML file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file: %w", err)
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse overrides file %s: %w", path, err)
	}

	return &o, nil
}
