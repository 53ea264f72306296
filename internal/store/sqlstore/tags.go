package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell/inkwell-server/internal/domain"
	"github.com/inkwell/inkwell-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `t.id, t.name`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	if err := scanner.Scan(&t.ID, &t.Name); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTags(rows *sql.Rows) ([]*domain.Tag, error) {
	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

// CreateTag inserts a tag and sets its id.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) (int64, error) {
	var id int64
	err := s.q().QueryRowContext(ctx, s.dialect.rebind(`
		INSERT INTO tags (name)
		VALUES (?)
		RETURNING id`),
		t.Name,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && id == 0) {
		return 0, store.ErrNoGeneratedID
	}
	if err != nil {
		return 0, fmt.Errorf("insert tag: %w", err)
	}

	t.ID = id
	return id, nil
}

// GetTag retrieves a tag by its ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	row := s.q().QueryRowContext(ctx,
		s.dialect.rebind(`SELECT `+tagColumns+` FROM tags t WHERE t.id = ?`), id)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage(fmt.Sprintf("tag %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("scan tag: %w", err)
	}
	return t, nil
}

// ListTags returns all tags ordered by id.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.q().QueryContext(ctx, `SELECT `+tagColumns+` FROM tags t ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// UpdateTag renames a tag.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) UpdateTag(ctx context.Context, t *domain.Tag) error {
	result, err := s.q().ExecContext(ctx,
		s.dialect.rebind(`UPDATE tags SET name = ? WHERE id = ?`), t.Name, t.ID)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return requireAffected(result, "tag", t.ID)
}

// DeleteTag removes a tag and its post associations.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	result, err := s.q().ExecContext(ctx, s.dialect.rebind(`DELETE FROM tags WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return requireAffected(result, "tag", id)
}

// TagsForPost returns the tags attached to a post, ordered by id.
// An unknown post yields an empty slice.
func (s *Store) TagsForPost(ctx context.Context, postID int64) ([]*domain.Tag, error) {
	return s.tagsForPost(ctx, s.q(), postID)
}

func (s *Store) tagsForPost(ctx context.Context, q querier, postID int64) ([]*domain.Tag, error) {
	rows, err := q.QueryContext(ctx, s.dialect.rebind(`
		SELECT `+tagColumns+`
		FROM tags t
		INNER JOIN tag_posts tp ON tp.tag_id = t.id
		WHERE tp.post_id = ?
		ORDER BY t.id`), postID)
	if err != nil {
		return nil, fmt.Errorf("query tags for post: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// PostsForTag returns the posts carrying a tag, ordered by id.
// Only id, title and content are read; Owner is an id-only reference and
// Tags is left nil.
func (s *Store) PostsForTag(ctx context.Context, tagID int64) ([]*domain.Post, error) {
	rows, err := s.q().QueryContext(ctx, s.dialect.rebind(`
		SELECT p.id, p.title, p.content, p.user_id
		FROM posts p
		INNER JOIN tag_posts tp ON tp.post_id = p.id
		WHERE tp.tag_id = ?
		ORDER BY p.id`), tagID)
	if err != nil {
		return nil, fmt.Errorf("query posts for tag: %w", err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		var (
			p       domain.Post
			ownerID int64
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &ownerID); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Owner = domain.RefUser(ownerID)
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// AddTagToPost attaches a tag to a post.
// Returns store.ErrAlreadyExists if the pair is already associated and
// store.ErrNotFound if either side does not exist.
func (s *Store) AddTagToPost(ctx context.Context, tagID, postID int64) error {
	_, err := s.q().ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO tag_posts (tag_id, post_id)
		VALUES (?, ?)`),
		tagID,
		postID,
	)
	switch {
	case err == nil:
		return nil
	case s.dialect.isUniqueViolation(err):
		return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("tag %d is already attached to post %d", tagID, postID))
	case s.dialect.isForeignKeyViolation(err):
		return store.ErrNotFound.WithMessage(fmt.Sprintf("tag %d or post %d not found", tagID, postID))
	default:
		return fmt.Errorf("insert tag_post: %w", err)
	}
}

// RemoveTagFromPost detaches a tag from a post.
// Returns store.ErrNotFound if the pair is not associated.
func (s *Store) RemoveTagFromPost(ctx context.Context, tagID, postID int64) error {
	result, err := s.q().ExecContext(ctx, s.dialect.rebind(`
		DELETE FROM tag_posts
		WHERE tag_id = ? AND post_id = ?`),
		tagID,
		postID,
	)
	if err != nil {
		return fmt.Errorf("delete tag_post: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound.WithMessage(fmt.Sprintf("tag %d is not attached to post %d", tagID, postID))
	}
	return nil
}
