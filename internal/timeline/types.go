package timeline

import "time"

// Tweet is a content item from a search timeline.
type Tweet struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Text           string    `json:"text"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Likes          int       `json:"likes"`
	Retweets       int       `json:"retweets"`
	Replies        int       `json:"replies"`
	Quotes         int       `json:"quotes"`
	Views          int       `json:"views,omitempty"`
	Hashtags       []string  `json:"hashtags,omitempty"`
	Timestamp      int64     `json:"timestamp"`
	TimeParsed     time.Time `json:"time_parsed"`
	PermanentURL   string    `json:"permanent_url"`
}

// Profile is a user item from a search timeline.
type Profile struct {
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Biography      string    `json:"biography,omitempty"`
	Location       string    `json:"location,omitempty"`
	URL            string    `json:"url"`
	Avatar         string    `json:"avatar,omitempty"`
	Followers      int       `json:"followers"`
	Following      int       `json:"following"`
	TweetsCount    int       `json:"tweets_count"`
	IsVerified     bool      `json:"is_verified"`
	IsBlueVerified bool      `json:"is_blue_verified"`
	Joined         time.Time `json:"joined,omitempty"`
}

// The raw upstream shapes below only name the fields the parsers read.

type searchTimelineResponse struct {
	Data *struct {
		SearchByRawQuery *struct {
			SearchTimeline *struct {
				Timeline *struct {
					Instructions []instruction `json:"instructions"`
				} `json:"timeline"`
			} `json:"search_timeline"`
		} `json:"search_by_raw_query"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type instruction struct {
	Type    string  `json:"type"`
	Entries []entry `json:"entries"`
	Entry   *entry  `json:"entry"`
}

type entry struct {
	EntryID string       `json:"entryId"`
	Content entryContent `json:"content"`
}

type entryContent struct {
	EntryType   string       `json:"entryType"`
	CursorType  string       `json:"cursorType"`
	Value       string       `json:"value"`
	ItemContent *itemContent `json:"itemContent"`
	Items       []struct {
		Item struct {
			ItemContent *itemContent `json:"itemContent"`
		} `json:"item"`
	} `json:"items"`
}

type itemContent struct {
	ItemType     string `json:"itemType"`
	TweetResults *struct {
		Result *tweetResult `json:"result"`
	} `json:"tweet_results"`
	UserResults *struct {
		Result *userResult `json:"result"`
	} `json:"user_results"`
}

type tweetResult struct {
	TypeName string       `json:"__typename"`
	RestID   string       `json:"rest_id"`
	Tweet    *tweetResult `json:"tweet"`
	Core     *struct {
		UserResults struct {
			Result *userResult `json:"result"`
		} `json:"user_results"`
	} `json:"core"`
	Views *struct {
		Count string `json:"count"`
	} `json:"views"`
	Legacy *tweetLegacy `json:"legacy"`
}

type tweetLegacy struct {
	IDStr             string `json:"id_str"`
	ConversationIDStr string `json:"conversation_id_str"`
	FullText          string `json:"full_text"`
	UserIDStr         string `json:"user_id_str"`
	FavoriteCount     int    `json:"favorite_count"`
	RetweetCount      int    `json:"retweet_count"`
	ReplyCount        int    `json:"reply_count"`
	QuoteCount        int    `json:"quote_count"`
	CreatedAt         string `json:"created_at"`
	Entities          struct {
		Hashtags []struct {
			Text string `json:"text"`
		} `json:"hashtags"`
	} `json:"entities"`
}

type userResult struct {
	TypeName       string `json:"__typename"`
	RestID         string `json:"rest_id"`
	IsBlueVerified bool   `json:"is_blue_verified"`
	Core           *struct {
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
		CreatedAt  string `json:"created_at"`
	} `json:"core"`
	Legacy *userLegacy `json:"legacy"`
}

type userLegacy struct {
	Name                 string `json:"name"`
	ScreenName           string `json:"screen_name"`
	Description          string `json:"description"`
	Location             string `json:"location"`
	FollowersCount       int    `json:"followers_count"`
	FriendsCount         int    `json:"friends_count"`
	StatusesCount        int    `json:"statuses_count"`
	Verified             bool   `json:"verified"`
	ProfileImageURLHTTPS string `json:"profile_image_url_https"`
	CreatedAt            string `json:"created_at"`
}
