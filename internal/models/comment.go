package models

import "time"

type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int       `json:"user_id"`
	PostID    int       `json:"post_id"`
	Edited    bool      `json:"edited"`
	// Username is the author name from the joined users row.
	Username string `json:"username"`
}
