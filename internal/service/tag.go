package service

import (
	"context"
	"log/slog"

	"github.com/inkwell/inkwell-server/internal/dto"
	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/store"
)

// TagService manages tags and their associations with posts.
type TagService struct {
	store  store.TagStore
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.TagStore, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// ListTags returns all tags ordered by ID.
func (s *TagService) ListTags(ctx context.Context) ([]dto.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, storeError(ctx, s.logger, "list tags", err)
	}
	return dto.TagsFromEntities(tags), nil
}

// GetTag returns a single tag.
func (s *TagService) GetTag(ctx context.Context, id int64) (*dto.Tag, error) {
	t, err := s.store.GetTag(ctx, id)
	if err != nil {
		return nil, storeError(ctx, s.logger, "get tag", err)
	}
	out := dto.TagFromEntity(t)
	return &out, nil
}

// CreateTag stores a new tag.
func (s *TagService) CreateTag(ctx context.Context, req dto.TagRequest) (*dto.Tag, error) {
	t := req.ToEntity(0)
	if _, err := s.store.CreateTag(ctx, t); err != nil {
		return nil, storeError(ctx, s.logger, "create tag", err)
	}

	logger.FromContext(ctx, s.logger).Info("tag created", "tag_id", t.ID, "name", t.Name)

	out := dto.TagFromEntity(t)
	return &out, nil
}

// UpdateTag renames a tag.
func (s *TagService) UpdateTag(ctx context.Context, id int64, req dto.TagRequest) (*dto.Tag, error) {
	t := req.ToEntity(id)
	if err := s.store.UpdateTag(ctx, t); err != nil {
		return nil, storeError(ctx, s.logger, "update tag", err)
	}

	logger.FromContext(ctx, s.logger).Info("tag updated", "tag_id", id, "name", t.Name)

	out := dto.TagFromEntity(t)
	return &out, nil
}

// DeleteTag removes a tag and detaches it from every post.
func (s *TagService) DeleteTag(ctx context.Context, id int64) error {
	if err := s.store.DeleteTag(ctx, id); err != nil {
		return storeError(ctx, s.logger, "delete tag", err)
	}

	logger.FromContext(ctx, s.logger).Info("tag deleted", "tag_id", id)
	return nil
}

// TagsForPost returns the tags attached to a post.
func (s *TagService) TagsForPost(ctx context.Context, postID int64) ([]dto.Tag, error) {
	tags, err := s.store.TagsForPost(ctx, postID)
	if err != nil {
		return nil, storeError(ctx, s.logger, "tags for post", err)
	}
	return dto.TagsFromEntities(tags), nil
}

// PostsForTag returns the posts carrying a tag. Posts in the result do not
// include their own tags.
func (s *TagService) PostsForTag(ctx context.Context, tagID int64) ([]dto.Post, error) {
	posts, err := s.store.PostsForTag(ctx, tagID)
	if err != nil {
		return nil, storeError(ctx, s.logger, "posts for tag", err)
	}
	return dto.PostsFromEntities(posts), nil
}

// AddTagToPost attaches a tag to a post.
func (s *TagService) AddTagToPost(ctx context.Context, req dto.TagPostRequest) error {
	assoc := req.ToEntity()
	if err := s.store.AddTagToPost(ctx, assoc.TagID, assoc.PostID); err != nil {
		return storeError(ctx, s.logger, "add tag to post", err)
	}

	logger.FromContext(ctx, s.logger).Info("tag added to post", "tag_id", assoc.TagID, "post_id", assoc.PostID)
	return nil
}

// RemoveTagFromPost detaches a tag from a post.
func (s *TagService) RemoveTagFromPost(ctx context.Context, tagID, postID int64) error {
	if err := s.store.RemoveTagFromPost(ctx, tagID, postID); err != nil {
		return storeError(ctx, s.logger, "remove tag from post", err)
	}

	logger.FromContext(ctx, s.logger).Info("tag removed from post", "tag_id", tagID, "post_id", postID)
	return nil
}
