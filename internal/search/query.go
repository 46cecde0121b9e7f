package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/x-hunter/pkg/pagination"
)

// FeaturesVersion identifies the feature-flag set below. Bump it whenever the set changes.
const FeaturesVersion = "2025-07"

// Features is the feature-flag set sent with every search request. The upstream rejects
// requests whose set does not match what its web client sends.
var Features = map[string]bool{
	"rweb_video_screen_enabled":                                               false,
	"payments_enabled":                                                        false,
	"profile_label_improvements_pcf_label_in_post_enabled":                    true,
	"responsive_web_profile_redirect_enabled":                                 false,
	"rweb_tipjar_consumption_enabled":                                         true,
	"verified_phone_label_enabled":                                            false,
	"creator_subscriptions_tweet_preview_api_enabled":                         true,
	"responsive_web_graphql_timeline_navigation_enabled":                      true,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
	"premium_content_api_read_enabled":                                        false,
	"communities_web_enable_tweet_community_results_fetch":                    true,
	"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
	"responsive_web_grok_analyze_button_fetch_trends_enabled":                 false,
	"responsive_web_grok_analyze_post_followups_enabled":                      true,
	"responsive_web_jetfuel_frame":                                            true,
	"responsive_web_grok_share_attachment_enabled":                            true,
	"articles_preview_enabled":                                                true,
	"responsive_web_edit_tweet_api_enabled":                                   true,
	"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
	"view_counts_everywhere_api_enabled":                                      true,
	"longform_notetweets_consumption_enabled":                                 true,
	"responsive_web_twitter_article_tweet_consumption_enabled":                true,
	"tweet_awards_web_tipping_enabled":                                        false,
	"responsive_web_grok_show_grok_translated_post":                           true,
	"responsive_web_grok_analysis_button_from_backend":                        true,
	"creator_subscriptions_quote_tweet_preview_enabled":                       false,
	"freedom_of_speech_not_reach_fetch_enabled":                               true,
	"standardized_nudges_misinfo":                                             true,
	"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
	"longform_notetweets_rich_text_read_enabled":                              true,
	"longform_notetweets_inline_media_enabled":                                true,
	"responsive_web_grok_image_annotation_enabled":                            true,
	"responsive_web_grok_imagine_annotation_enabled":                          true,
	"responsive_web_grok_community_note_auto_translation_is_enabled":          false,
	"responsive_web_enhance_cards_enabled":                                    false,
}

// Query is the parameter set of one SearchTimeline request.
type Query struct {
	Term      string
	Count     int
	Mode      Mode
	Cursor    string
	Variables map[string]any
}

// BuildQuery assembles the request variables for one page. count is clamped to the upstream
// page ceiling; the cursor key is only present when cursor is non-empty.
func BuildQuery(term string, count int, mode Mode, cursor string) (*Query, error) {
	if term == "" {
		return nil, apperr.InvalidArgument("search.build_query", "term must not be empty")
	}
	count = min(count, pagination.PageMaxSize)

	vars := map[string]any{
		"rawQuery":              term,
		"count":                 count,
		"querySource":           "typed_query",
		"product":               mode.Product(),
		"withGrokTranslatedBio": false,
	}
	if cursor != "" {
		vars["cursor"] = cursor
	}

	return &Query{
		Term:      term,
		Count:     count,
		Mode:      mode,
		Cursor:    cursor,
		Variables: vars,
	}, nil
}

// Values encodes the query as the features and variables URL parameters.
func (q *Query) Values() (url.Values, error) {
	features, err := stableJSON(Features)
	if err != nil {
		return nil, fmt.Errorf("encode features: %w", err)
	}
	variables, err := stableJSON(q.Variables)
	if err != nil {
		return nil, fmt.Errorf("encode variables: %w", err)
	}

	v := url.Values{}
	v.Set("features", features)
	v.Set("variables", variables)
	return v, nil
}

// Referer is the search page the request claims to come from.
func (q *Query) Referer() string {
	return "https://x.com/search?q=" + escapeComponent(q.Term) + "&src=typed_query"
}

// componentEscaper undoes the escapes QueryEscape applies beyond a browser's
// encodeURIComponent: spaces become %20 and ! ' ( ) * stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentEscaper.Replace(url.QueryEscape(s))
}

// stableJSON encodes v with sorted map keys and no HTML escaping, so equal inputs give equal bytes.
func stableJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
