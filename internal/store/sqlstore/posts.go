package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell/inkwell-server/internal/domain"
	"github.com/inkwell/inkwell-server/internal/store"
)

// postWithOwnerSelect reads posts together with their owner. The inner join
// hides posts whose owner cannot be resolved.
// Must match the scan order in scanPostWithOwner.
const postWithOwnerSelect = `
	SELECT p.id, p.title, p.content, u.id, u.name, u.email
	FROM posts p
	INNER JOIN users u ON u.id = p.user_id`

func scanPostWithOwner(scanner interface{ Scan(dest ...any) error }) (*domain.Post, error) {
	var (
		p          domain.Post
		ownerID    int64
		ownerName  string
		ownerEmail string
	)

	if err := scanner.Scan(&p.ID, &p.Title, &p.Content, &ownerID, &ownerName, &ownerEmail); err != nil {
		return nil, err
	}

	p.Owner = domain.LoadedUserRef(ownerID, ownerName, ownerEmail)
	return &p, nil
}

// CreatePost inserts a post owned by post.Owner and sets its id.
// Tag associations are not written.
// Returns store.ErrInvalidInput if the owner does not exist.
func (s *Store) CreatePost(ctx context.Context, p *domain.Post) (int64, error) {
	var id int64
	err := s.q().QueryRowContext(ctx, s.dialect.rebind(`
		INSERT INTO posts (title, content, user_id)
		VALUES (?, ?, ?)
		RETURNING id`),
		p.Title,
		p.Content,
		p.Owner.ID,
	).Scan(&id)
	if s.dialect.isForeignKeyViolation(err) {
		return 0, store.ErrInvalidInput.WithMessage(fmt.Sprintf("user %d does not exist", p.Owner.ID))
	}
	if errors.Is(err, sql.ErrNoRows) || (err == nil && id == 0) {
		return 0, store.ErrNoGeneratedID
	}
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}

	p.ID = id
	return id, nil
}

// GetPost returns a post with its owner and tags. Both statements run on
// the same connection.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	q, release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	row := q.QueryRowContext(ctx, s.dialect.rebind(postWithOwnerSelect+` WHERE p.id = ?`), id)

	p, err := scanPostWithOwner(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage(fmt.Sprintf("post %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("scan post: %w", err)
	}

	p.Tags, err = s.tagsForPost(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPosts returns every post with owner and tags, ordered by id.
// Tags are read with one extra query for all posts rather than a join, so
// the many-to-many side never duplicates post rows.
func (s *Store) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	q, release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	posts, err := s.queryPosts(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	tags, err := s.tagsByPost(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		p.Tags = tags[p.ID]
		if p.Tags == nil {
			p.Tags = []*domain.Tag{}
		}
	}

	return posts, nil
}

func (s *Store) queryPosts(ctx context.Context, q querier) ([]*domain.Post, error) {
	rows, err := q.QueryContext(ctx, postWithOwnerSelect+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		p, err := scanPostWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// tagsByPost returns every association grouped by post id.
func (s *Store) tagsByPost(ctx context.Context, q querier) (map[int64][]*domain.Tag, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT tp.post_id, t.id, t.name
		FROM tag_posts tp
		INNER JOIN tags t ON t.id = tp.tag_id
		ORDER BY tp.post_id, t.id`)
	if err != nil {
		return nil, fmt.Errorf("query post tags: %w", err)
	}
	defer rows.Close()

	byPost := make(map[int64][]*domain.Tag)
	for rows.Next() {
		var (
			postID int64
			t      domain.Tag
		)
		if err := rows.Scan(&postID, &t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan post tag: %w", err)
		}
		byPost[postID] = append(byPost[postID], &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post tags: %w", err)
	}
	return byPost, nil
}

// UpdatePost replaces the title, content and owner of a post.
// Tag associations are not touched.
// Returns store.ErrNotFound if the post does not exist and
// store.ErrInvalidInput if the new owner does not exist.
func (s *Store) UpdatePost(ctx context.Context, p *domain.Post) error {
	result, err := s.q().ExecContext(ctx, s.dialect.rebind(`
		UPDATE posts SET title = ?, content = ?, user_id = ?
		WHERE id = ?`),
		p.Title,
		p.Content,
		p.Owner.ID,
		p.ID,
	)
	if s.dialect.isForeignKeyViolation(err) {
		return store.ErrInvalidInput.WithMessage(fmt.Sprintf("user %d does not exist", p.Owner.ID))
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return requireAffected(result, "post", p.ID)
}

// DeletePost removes a post and its tag associations.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	result, err := s.q().ExecContext(ctx, s.dialect.rebind(`DELETE FROM posts WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireAffected(result, "post", id)
}
