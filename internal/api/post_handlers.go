package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwell/inkwell-server/internal/dto"
)

const invalidPostID = "Invalid post ID format."

var postMessages = map[string]string{
	"title":   "Content or title are required.",
	"content": "Content or title are required.",
	"userId":  "User ID is required.",
	"tagIds":  "Tag IDs must be positive.",
}

func (s *Server) registerPostRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPosts",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts",
		Summary:     "List posts",
		Description: "Returns every post with its tags",
		Tags:        []string{"Posts"},
	}, s.handleListPosts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPost",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{id}",
		Summary:     "Get post",
		Description: "Returns a post with its tags",
		Tags:        []string{"Posts"},
	}, s.handleGetPost)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createPost",
		Method:        http.MethodPost,
		Path:          "/api/v1/posts",
		Summary:       "Create post",
		Description:   "Creates a post owned by an existing user, optionally attaching tags",
		Tags:          []string{"Posts"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreatePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePost",
		Method:      http.MethodPut,
		Path:        "/api/v1/posts/{id}",
		Summary:     "Update post",
		Description: "Replaces a post's title, content and owner. Tags are kept",
		Tags:        []string{"Posts"},
	}, s.handleUpdatePost)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deletePost",
		Method:        http.MethodDelete,
		Path:          "/api/v1/posts/{id}",
		Summary:       "Delete post",
		Description:   "Deletes a post and detaches its tags",
		Tags:          []string{"Posts"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeletePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPostTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{id}/tags",
		Summary:     "Get post tags",
		Description: "Returns the tags attached to a post",
		Tags:        []string{"Posts", "Tags"},
	}, s.handleGetPostTags)
}

// PostIDInput identifies a post by path id.
type PostIDInput struct {
	ID string `path:"id" doc:"Post ID"`
}

// CreatePostInput wraps the create post request for Huma.
type CreatePostInput struct {
	Body dto.CreatePostRequest
}

// UpdatePostInput wraps the update post request for Huma.
type UpdatePostInput struct {
	ID   string `path:"id" doc:"Post ID"`
	Body dto.PostRequest
}

// PostOutput wraps a single post for Huma.
type PostOutput struct {
	Body dto.Post
}

// ListPostsOutput wraps a list of posts for Huma.
type ListPostsOutput struct {
	Body []dto.Post
}

func (s *Server) handleListPosts(ctx context.Context, _ *struct{}) (*ListPostsOutput, error) {
	posts, err := s.services.Post.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	return &ListPostsOutput{Body: posts}, nil
}

func (s *Server) handleGetPost(ctx context.Context, input *PostIDInput) (*PostOutput, error) {
	id, err := parseID(input.ID, invalidPostID)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Post.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PostOutput{Body: *p}, nil
}

func (s *Server) handleCreatePost(ctx context.Context, input *CreatePostInput) (*PostOutput, error) {
	if err := s.validator.ValidateWith(input.Body, postMessages); err != nil {
		return nil, err
	}

	p, err := s.services.Post.CreatePost(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &PostOutput{Body: *p}, nil
}

func (s *Server) handleUpdatePost(ctx context.Context, input *UpdatePostInput) (*PostOutput, error) {
	id, err := parseID(input.ID, invalidPostID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateWith(input.Body, postMessages); err != nil {
		return nil, err
	}

	p, err := s.services.Post.UpdatePost(ctx, id, input.Body)
	if err != nil {
		return nil, err
	}
	return &PostOutput{Body: *p}, nil
}

func (s *Server) handleDeletePost(ctx context.Context, input *PostIDInput) (*struct{}, error) {
	id, err := parseID(input.ID, invalidPostID)
	if err != nil {
		return nil, err
	}

	if err := s.services.Post.DeletePost(ctx, id); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleGetPostTags(ctx context.Context, input *PostIDInput) (*ListTagsOutput, error) {
	id, err := parseID(input.ID, invalidPostID)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.TagsForPost(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: tags}, nil
}
