package timeline

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/x-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/x-hunter/pkg/pagination"
)

const (
	cursorBottom = "Bottom"
	profileURL   = "https://x.com/"
)

// ParseTweets extracts the tweets and the bottom cursor of a SearchTimeline response.
func ParseTweets(body []byte) (*pagination.Page[Tweet], error) {
	instructions, err := decodeInstructions("timeline.parse_tweets", body)
	if err != nil {
		return nil, err
	}

	var tweets []Tweet
	cursor := walk(instructions, func(ic *itemContent) {
		if ic.TweetResults == nil || ic.TweetResults.Result == nil {
			return
		}
		if t, ok := toTweet(ic.TweetResults.Result); ok {
			tweets = append(tweets, t)
		}
	})

	return pagination.NewPage(tweets, cursor), nil
}

// ParseProfiles extracts the users and the bottom cursor of a SearchTimeline response.
func ParseProfiles(body []byte) (*pagination.Page[Profile], error) {
	instructions, err := decodeInstructions("timeline.parse_profiles", body)
	if err != nil {
		return nil, err
	}

	var profiles []Profile
	cursor := walk(instructions, func(ic *itemContent) {
		if ic.UserResults == nil || ic.UserResults.Result == nil {
			return
		}
		if p, ok := toProfile(ic.UserResults.Result); ok {
			profiles = append(profiles, p)
		}
	})

	return pagination.NewPage(profiles, cursor), nil
}

func decodeInstructions(op string, body []byte) ([]instruction, error) {
	var resp searchTimelineResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperr.Wrap(apperr.KindResponseMalformed, op, err)
	}

	if resp.Data == nil || resp.Data.SearchByRawQuery == nil ||
		resp.Data.SearchByRawQuery.SearchTimeline == nil ||
		resp.Data.SearchByRawQuery.SearchTimeline.Timeline == nil {
		msg := "missing search timeline"
		if len(resp.Errors) > 0 {
			msg += ": " + resp.Errors[0].Message
		}
		return nil, apperr.Malformed(op, msg)
	}

	return resp.Data.SearchByRawQuery.SearchTimeline.Timeline.Instructions, nil
}

// walk visits every item in timeline order and returns the last bottom cursor seen.
func walk(instructions []instruction, visit func(*itemContent)) string {
	var cursor string

	visitEntry := func(e *entry) {
		c := e.Content
		if c.CursorType == cursorBottom {
			cursor = c.Value
			return
		}
		if c.ItemContent != nil {
			visit(c.ItemContent)
		}
		for _, it := range c.Items {
			if it.Item.ItemContent != nil {
				visit(it.Item.ItemContent)
			}
		}
	}

	for _, ins := range instructions {
		for i := range ins.Entries {
			visitEntry(&ins.Entries[i])
		}
		if ins.Entry != nil {
			visitEntry(ins.Entry)
		}
	}

	return cursor
}

func toTweet(r *tweetResult) (Tweet, bool) {
	if r.TypeName == "TweetWithVisibilityResults" && r.Tweet != nil {
		r = r.Tweet
	}
	if r.Legacy == nil {
		return Tweet{}, false
	}

	l := r.Legacy
	t := Tweet{
		ID:             r.RestID,
		ConversationID: l.ConversationIDStr,
		Text:           l.FullText,
		UserID:         l.UserIDStr,
		Likes:          l.FavoriteCount,
		Retweets:       l.RetweetCount,
		Replies:        l.ReplyCount,
		Quotes:         l.QuoteCount,
	}
	if t.ID == "" {
		t.ID = l.IDStr
	}
	if t.ID == "" {
		return Tweet{}, false
	}

	if r.Core != nil && r.Core.UserResults.Result != nil {
		if p, ok := toProfile(r.Core.UserResults.Result); ok {
			t.Username = p.Username
			t.Name = p.Name
			if t.UserID == "" {
				t.UserID = p.UserID
			}
		}
	}
	if r.Views != nil {
		t.Views, _ = strconv.Atoi(r.Views.Count)
	}
	for _, h := range l.Entities.Hashtags {
		t.Hashtags = append(t.Hashtags, h.Text)
	}
	if ts, err := time.Parse(time.RubyDate, l.CreatedAt); err == nil {
		t.TimeParsed = ts.UTC()
		t.Timestamp = ts.Unix()
	}
	if t.Username != "" {
		t.PermanentURL = profileURL + t.Username + "/status/" + t.ID
	}

	return t, true
}

func toProfile(r *userResult) (Profile, bool) {
	if r.RestID == "" {
		return Profile{}, false
	}

	p := Profile{
		UserID:         r.RestID,
		IsBlueVerified: r.IsBlueVerified,
	}

	var created string
	if l := r.Legacy; l != nil {
		p.Username = l.ScreenName
		p.Name = l.Name
		p.Biography = l.Description
		p.Location = l.Location
		p.Followers = l.FollowersCount
		p.Following = l.FriendsCount
		p.TweetsCount = l.StatusesCount
		p.IsVerified = l.Verified
		p.Avatar = strings.Replace(l.ProfileImageURLHTTPS, "_normal", "", 1)
		created = l.CreatedAt
	}
	if c := r.Core; c != nil {
		if p.Username == "" {
			p.Username = c.ScreenName
		}
		if p.Name == "" {
			p.Name = c.Name
		}
		if created == "" {
			created = c.CreatedAt
		}
	}

	if ts, err := time.Parse(time.RubyDate, created); err == nil {
		p.Joined = ts.UTC()
	}
	if p.Username != "" {
		p.URL = profileURL + p.Username
	}

	return p, true
}
