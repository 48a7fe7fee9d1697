package models

type Post struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// UserID is nil for legacy rows created before accounts existed;
	// boot seeding backfills these to the default user.
	UserID *int `json:"user_id"`
	// Username is the author name from the joined users row (empty when UserID is nil).
	Username string `json:"username"`
}

// SearchResult is a post with its trigram similarity scores against the search query.
type SearchResult struct {
	Post
	TitleSim   float64 `json:"title_sim"`
	ContentSim float64 `json:"content_sim"`
}
