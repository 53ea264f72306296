package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/inkwell/inkwell-server/internal/domain"
	"github.com/inkwell/inkwell-server/internal/dto"
	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/store"
)

// PostService exposes posts in their transfer form.
type PostService struct {
	store  store.Store
	logger *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(store store.Store, logger *slog.Logger) *PostService {
	return &PostService{
		store:  store,
		logger: logger,
	}
}

// ListPosts returns every post with its tags.
func (s *PostService) ListPosts(ctx context.Context) ([]dto.Post, error) {
	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, storeError(ctx, s.logger, "list posts", err)
	}
	return dto.PostsFromEntities(posts), nil
}

// GetPost returns a post with its tags.
func (s *PostService) GetPost(ctx context.Context, id int64) (*dto.Post, error) {
	p, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, storeError(ctx, s.logger, "get post", err)
	}
	out := dto.PostFromEntity(p)
	return &out, nil
}

// CreatePost stores a new post. When tag IDs are given, the post and its
// associations are written in one transaction: an unknown tag leaves
// nothing behind.
func (s *PostService) CreatePost(ctx context.Context, req dto.CreatePostRequest) (*dto.Post, error) {
	p := req.Post().ToEntity(0)

	if len(req.TagIDs) == 0 {
		if _, err := s.store.CreatePost(ctx, p); err != nil {
			return nil, storeError(ctx, s.logger, "create post", err)
		}
		p.Tags = []*domain.Tag{}

		logger.FromContext(ctx, s.logger).Info("post created", "post_id", p.ID, "user_id", p.Owner.ID)

		out := dto.PostFromEntity(p)
		return &out, nil
	}

	tagIDs := slices.Clone(req.TagIDs)
	slices.Sort(tagIDs)
	tagIDs = slices.Compact(tagIDs)

	var created *domain.Post
	err := s.store.WithTx(ctx, func(repos store.Repositories) error {
		id, err := repos.CreatePost(ctx, p)
		if err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			if err := repos.AddTagToPost(ctx, tagID, id); err != nil {
				return err
			}
		}
		created, err = repos.GetPost(ctx, id)
		return err
	})
	if err != nil {
		return nil, storeError(ctx, s.logger, "create post", err)
	}

	logger.FromContext(ctx, s.logger).Info("post created",
		"post_id", created.ID,
		"user_id", created.Owner.ID,
		"tags", len(created.Tags),
	)

	out := dto.PostFromEntity(created)
	return &out, nil
}

// UpdatePost replaces a post's title, content and owner. Tag associations
// are left as they are.
func (s *PostService) UpdatePost(ctx context.Context, id int64, req dto.PostRequest) (*dto.Post, error) {
	if err := s.store.UpdatePost(ctx, req.ToEntity(id)); err != nil {
		return nil, storeError(ctx, s.logger, "update post", err)
	}

	logger.FromContext(ctx, s.logger).Info("post updated", "post_id", id, "user_id", req.UserID)

	return s.GetPost(ctx, id)
}

// DeletePost removes a post and its tag associations.
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	if err := s.store.DeletePost(ctx, id); err != nil {
		return storeError(ctx, s.logger, "delete post", err)
	}

	logger.FromContext(ctx, s.logger).Info("post deleted", "post_id", id)
	return nil
}
