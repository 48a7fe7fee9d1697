package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ttttttwt/final-test/internal/models"
)

// ==========================
// PostRepo
// ==========================
type PostRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

func scanPost(row interface {
	Scan(dest ...interface{}) error
}) (*models.Post, error) {
	p := &models.Post{}
	var userID sql.NullInt64
	var username sql.NullString
	if err := row.Scan(&p.ID, &p.Subject, &p.Title, &p.Content, &userID, &username); err != nil {
		return nil, err
	}
	if userID.Valid {
		id := int(userID.Int64)
		p.UserID = &id
	}
	p.Username = username.String
	return p, nil
}

// ==========================
// List Posts (home page, insertion order)
// ==========================
func (r *PostRepo) List(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT posts.id, posts.subject, posts.title, posts.content, posts.user_id, users.username
		FROM posts
		LEFT JOIN users ON posts.user_id = users.id
		ORDER BY posts.id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}

	return posts, rows.Err()
}

// ==========================
// Create Post
// ==========================
func (r *PostRepo) Create(ctx context.Context, subject, title, content string, userID int) (*models.Post, error) {
	query := `
		INSERT INTO posts (subject, title, content, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, subject, title, content, user_id
	`

	p := &models.Post{}
	var owner sql.NullInt64

	err := r.DB.QueryRowContext(ctx, query, subject, title, content, userID).
		Scan(&p.ID, &p.Subject, &p.Title, &p.Content, &owner)

	if err != nil {
		return nil, err
	}
	if owner.Valid {
		id := int(owner.Int64)
		p.UserID = &id
	}

	return p, nil
}

// ==========================
// Get By ID (with author username)
// ==========================
func (r *PostRepo) GetByID(ctx context.Context, id int) (*models.Post, error) {
	query := `
		SELECT posts.id, posts.subject, posts.title, posts.content, posts.user_id, users.username
		FROM posts
		LEFT JOIN users ON posts.user_id = users.id
		WHERE posts.id = $1
	`

	p, err := scanPost(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

// ==========================
// Owner Lookup (for the authorization check)
// ==========================
func (r *PostRepo) OwnerID(ctx context.Context, id int) (*int, error) {
	var owner sql.NullInt64

	err := r.DB.QueryRowContext(ctx, `SELECT user_id FROM posts WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !owner.Valid {
		return nil, nil
	}
	id = int(owner.Int64)
	return &id, nil
}

// ==========================
// Update Post (owner predicate in the statement)
// ==========================
func (r *PostRepo) Update(ctx context.Context, id int, subject, title, content string, ownerID int) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE posts
		SET subject = $1, title = $2, content = $3
		WHERE id = $4 AND user_id = $5
	`, subject, title, content, id, ownerID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Row vanished or changed owner between check and write. Fail closed.
		return ErrForbidden
	}

	return nil
}

// ==========================
// Delete Post (owner predicate in the statement)
// ==========================
func (r *PostRepo) Delete(ctx context.Context, id, ownerID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrForbidden
	}

	return nil
}

// ==========================
// Search (trigram similarity + case-insensitive substring)
// ==========================
func (r *PostRepo) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT
			posts.id, posts.subject, posts.title, posts.content, posts.user_id,
			users.username,
			similarity(title, $1) AS title_sim,
			similarity(content, $1) AS content_sim
		FROM posts
		LEFT JOIN users ON posts.user_id = users.id
		WHERE
			similarity(title, $1) > 0.3 OR
			similarity(content, $1) > 0.3 OR
			title ILIKE $2 OR
			content ILIKE $2
		ORDER BY GREATEST(similarity(title, $1), similarity(content, $1)) DESC
	`, query, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.SearchResult
	for rows.Next() {
		var res models.SearchResult
		var userID sql.NullInt64
		var username sql.NullString
		if err := rows.Scan(&res.ID, &res.Subject, &res.Title, &res.Content,
			&userID, &username, &res.TitleSim, &res.ContentSim); err != nil {
			return nil, err
		}
		if userID.Valid {
			id := int(userID.Int64)
			res.UserID = &id
		}
		res.Username = username.String
		results = append(results, res)
	}

	return results, rows.Err()
}
