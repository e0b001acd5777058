package mirror

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/momento-app/momento/internal/client/models"
)

// SQLiteRepository stores snapshots as JSON blobs in a key/value table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mirror (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set mirror[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM mirror WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mirror[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mirror WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete mirror[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) SaveUser(ctx context.Context, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return r.set(ctx, KeySession, b)
}

func (r *SQLiteRepository) LoadUser(ctx context.Context) (*models.User, error) {
	b, err := r.get(ctx, KeySession)
	if err != nil || b == nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &u, nil
}

func (r *SQLiteRepository) DeleteUser(ctx context.Context) error {
	return r.delete(ctx, KeySession)
}

func (r *SQLiteRepository) SavePosts(ctx context.Context, posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}
	b, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to encode posts: %w", err)
	}
	return r.set(ctx, KeyPosts, b)
}

func (r *SQLiteRepository) LoadPosts(ctx context.Context) ([]models.Post, error) {
	b, err := r.get(ctx, KeyPosts)
	if err != nil || b == nil {
		return nil, err
	}
	var posts []models.Post
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mirror`)
	if err != nil {
		return fmt.Errorf("failed to clear mirror: %w", err)
	}
	return nil
}
