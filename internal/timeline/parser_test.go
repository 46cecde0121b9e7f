package timeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

func TestParseTweets(t *testing.T) {
	page, err := ParseTweets(readFixture(t, "search_tweets.json"))
	require.NoError(t, err)

	require.Len(t, page.Items, 2, "tombstones are skipped")
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "BOTTOM-2", *page.NextCursor, "replace entries win over the added cursor")

	first := page.Items[0]
	assert.Equal(t, "1001", first.ID)
	assert.Equal(t, "ai is everywhere #ai", first.Text)
	assert.Equal(t, "ada", first.Username)
	assert.Equal(t, "Ada", first.Name)
	assert.Equal(t, "42", first.UserID)
	assert.Equal(t, 10, first.Likes)
	assert.Equal(t, 2, first.Retweets)
	assert.Equal(t, 1, first.Replies)
	assert.Equal(t, 1500, first.Views)
	assert.Equal(t, []string{"ai"}, first.Hashtags)
	assert.Equal(t, time.Date(2018, 10, 10, 20, 19, 24, 0, time.UTC), first.TimeParsed)
	assert.Equal(t, first.TimeParsed.Unix(), first.Timestamp)
	assert.Equal(t, "https://x.com/ada/status/1001", first.PermanentURL)

	second := page.Items[1]
	assert.Equal(t, "1002", second.ID)
	assert.Equal(t, "grace", second.Username)
	assert.Equal(t, "43", second.UserID)
	assert.Equal(t, 3, second.Likes)
}

func TestParseProfiles(t *testing.T) {
	page, err := ParseProfiles(readFixture(t, "search_users.json"))
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "USERS-NEXT", *page.NextCursor)

	ada := page.Items[0]
	assert.Equal(t, "42", ada.UserID)
	assert.Equal(t, "ada", ada.Username)
	assert.Equal(t, "engines", ada.Biography)
	assert.Equal(t, 100, ada.Followers)
	assert.Equal(t, 10, ada.Following)
	assert.Equal(t, 5, ada.TweetsCount)
	assert.True(t, ada.IsBlueVerified)
	assert.Equal(t, "https://pbs.twimg.com/profile_images/1/a.jpg", ada.Avatar)
	assert.Equal(t, "https://x.com/ada", ada.URL)
	assert.Equal(t, 2012, ada.Joined.Year())

	grace := page.Items[1]
	assert.Equal(t, "grace", grace.Username)
	assert.Equal(t, "Grace", grace.Name)
	assert.Equal(t, 2013, grace.Joined.Year())
}

func TestParseTweets_ProfileTimelineYieldsNoTweets(t *testing.T) {
	page, err := ParseTweets(readFixture(t, "search_users.json"))

	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		errContains string
	}{
		{name: "not json", body: `<html>`, errContains: "response_malformed"},
		{name: "no data", body: `{}`, errContains: "missing search timeline"},
		{name: "graphql errors", body: `{"errors":[{"message":"query is invalid"}]}`, errContains: "query is invalid"},
		{name: "no timeline", body: `{"data":{"search_by_raw_query":{"search_timeline":{}}}}`, errContains: "missing search timeline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTweets([]byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, apperr.KindResponseMalformed, apperr.KindOf(err))
			assert.Contains(t, err.Error(), tt.errContains)

			_, err = ParseProfiles([]byte(tt.body))
			assert.Equal(t, apperr.KindResponseMalformed, apperr.KindOf(err))
		})
	}
}

func TestParseTweets_EmptyTimeline(t *testing.T) {
	page, err := ParseTweets([]byte(`{"data":{"search_by_raw_query":{"search_timeline":{"timeline":{"instructions":[]}}}}}`))

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
}
