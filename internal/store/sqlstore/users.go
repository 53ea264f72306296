package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell/inkwell-server/internal/domain"
	"github.com/inkwell/inkwell-server/internal/store"
)

// userWithPostsSelect joins each user to its posts. Users without posts
// produce a single row with NULL post columns.
// Must match the scan order in scanUserPostRow.
const userWithPostsSelect = `
	SELECT u.id, u.name, u.email, p.id, p.title, p.content
	FROM users u
	LEFT JOIN posts p ON p.user_id = u.id`

// scanUserPostRow scans one joined row. post is nil when the row carries no
// post.
func scanUserPostRow(scanner interface{ Scan(dest ...any) error }) (user *domain.User, post *domain.Post, err error) {
	var (
		u       domain.User
		postID  sql.NullInt64
		title   sql.NullString
		content sql.NullString
	)

	if err := scanner.Scan(&u.ID, &u.Name, &u.Email, &postID, &title, &content); err != nil {
		return nil, nil, err
	}

	if postID.Valid {
		post = &domain.Post{
			ID:      postID.Int64,
			Title:   title.String,
			Content: content.String,
			Owner:   u.Ref(),
		}
	}
	return &u, post, nil
}

// collectUsers folds joined rows into users, grouping by user id.
// Output order follows the first appearance of each user.
func collectUsers(rows *sql.Rows) ([]*domain.User, error) {
	users := []*domain.User{}
	byID := make(map[int64]*domain.User)

	for rows.Next() {
		row, post, err := scanUserPostRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		u, ok := byID[row.ID]
		if !ok {
			u = row
			u.Posts = []*domain.Post{}
			byID[u.ID] = u
			users = append(users, u)
		}
		if post != nil {
			u.Posts = append(u.Posts, post)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// CreateUser inserts a user and sets its store-assigned id.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) (int64, error) {
	var id int64
	err := s.q().QueryRowContext(ctx, s.dialect.rebind(`
		INSERT INTO users (name, email)
		VALUES (?, ?)
		RETURNING id`),
		u.Name,
		u.Email,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && id == 0) {
		return 0, store.ErrNoGeneratedID
	}
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	u.ID = id
	return id, nil
}

// GetUser returns a user with its posts.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	rows, err := s.q().QueryContext(ctx,
		s.dialect.rebind(userWithPostsSelect+` WHERE u.id = ? ORDER BY p.id`), id)
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, store.ErrNotFound.WithMessage(fmt.Sprintf("user %d not found", id))
	}
	return users[0], nil
}

// ListUsers returns every user with its posts, ordered by id.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.q().QueryContext(ctx, userWithPostsSelect+` ORDER BY u.id, p.id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// UpdateUser replaces the name and email of an existing user.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	result, err := s.q().ExecContext(ctx, s.dialect.rebind(`
		UPDATE users SET name = ?, email = ?
		WHERE id = ?`),
		u.Name,
		u.Email,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(result, "user", u.ID)
}

// DeleteUser removes a user. Their posts are removed with them.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	result, err := s.q().ExecContext(ctx, s.dialect.rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(result, "user", id)
}

// requireAffected maps a write that matched no row to store.ErrNotFound.
func requireAffected(result sql.Result, entity string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage(fmt.Sprintf("%s %d not found", entity, id))
	}
	return nil
}
