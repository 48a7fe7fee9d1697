package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ttttttwt/final-test/internal/models"
)

// ==========================
// CommentRepo
// ==========================
type CommentRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{DB: db}
}

// ==========================
// List Comments For Post (oldest first)
// ==========================
func (r *CommentRepo) ListForPost(ctx context.Context, postID int) ([]models.Comment, error) {
	query := `
		SELECT comments.id, comments.content, comments.created_at, comments.user_id,
		       comments.post_id, comments.edited, users.username
		FROM comments
		LEFT JOIN users ON comments.user_id = users.id
		WHERE comments.post_id = $1
		ORDER BY comments.created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.UserID,
			&c.PostID, &c.Edited, &c.Username); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

// ==========================
// Create Comment
// ==========================
func (r *CommentRepo) Create(ctx context.Context, content string, userID, postID int) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO comments (content, user_id, post_id) VALUES ($1, $2, $3)`,
		content, userID, postID)
	return err
}

// ==========================
// Get By ID
// ==========================
func (r *CommentRepo) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	query := `
		SELECT id, content, created_at, user_id, post_id, edited
		FROM comments
		WHERE id = $1
	`

	c := &models.Comment{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Content, &c.CreatedAt, &c.UserID, &c.PostID, &c.Edited)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

// ==========================
// Owner Lookup (for the authorization check)
// ==========================
func (r *CommentRepo) OwnerID(ctx context.Context, id int) (*int, error) {
	var owner int

	err := r.DB.QueryRowContext(ctx, `SELECT user_id FROM comments WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &owner, nil
}

// ==========================
// Update Comment (sets edited flag; owner predicate in the statement)
// ==========================
// Returns the comment's post id so the caller can redirect back to the post.
func (r *CommentRepo) Update(ctx context.Context, id int, content string, ownerID int) (int, error) {
	var postID int

	err := r.DB.QueryRowContext(ctx, `
		UPDATE comments
		SET content = $1, edited = TRUE
		WHERE id = $2 AND user_id = $3
		RETURNING post_id
	`, content, id, ownerID).Scan(&postID)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrForbidden
	}
	if err != nil {
		return 0, err
	}

	return postID, nil
}

// ==========================
// Delete Comment (owner predicate in the statement)
// ==========================
// Returns the comment's post id so the caller can redirect back to the post.
func (r *CommentRepo) Delete(ctx context.Context, id, ownerID int) (int, error) {
	var postID int

	err := r.DB.QueryRowContext(ctx,
		`DELETE FROM comments WHERE id = $1 AND user_id = $2 RETURNING post_id`,
		id, ownerID).Scan(&postID)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrForbidden
	}
	if err != nil {
		return 0, err
	}

	return postID, nil
}
