package reddit

// Post is one submission authored by the user. The JSON tags define the
// exact shape embedded in the generation prompt's activity sample.
type Post struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	Subreddit  string  `json:"subreddit"`
	URL        string  `json:"url"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
}

// Comment is one comment authored by the user. LinkTitle is the parent
// submission's title when the listing provides it.
type Comment struct {
	ID         string  `json:"id"`
	Body       string  `json:"body"`
	Subreddit  string  `json:"subreddit"`
	LinkTitle  string  `json:"link_title"`
	CreatedUTC float64 `json:"created_utc"`
	Permalink  string  `json:"permalink"`
}

// Bundle holds a user's recent activity, newest-first, each side bounded
// by the fetch limit.
type Bundle struct {
	Posts    []Post
	Comments []Comment
}

// Empty reports whether the user has no posts and no comments.
func (b Bundle) Empty() bool {
	return len(b.Posts) == 0 && len(b.Comments) == 0
}
