package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwell/inkwell-server/internal/dto"
)

const invalidTagID = "Invalid tag ID format."

var (
	tagMessages = map[string]string{
		"name": "Name is required.",
	}
	tagPostMessages = map[string]string{
		"postId": "Post ID and Tag ID are required.",
		"tagId":  "Post ID and Tag ID are required.",
	}
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/tags",
		Summary:       "Create tag",
		Description:   "Creates a new tag",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPut,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update tag",
		Description: "Renames a tag",
		Tags:        []string{"Tags"},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteTag",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tags/{id}",
		Summary:       "Delete tag",
		Description:   "Deletes a tag and detaches it from every post",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTagPosts",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}/posts",
		Summary:     "Get tag posts",
		Description: "Returns the posts carrying this tag, without their own tags",
		Tags:        []string{"Tags"},
	}, s.handleGetTagPosts)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addTagToPost",
		Method:        http.MethodPost,
		Path:          "/api/v1/tags/addTagToPost",
		Summary:       "Attach tag to post",
		Description:   "Associates an existing tag with an existing post",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleAddTagToPost)

	huma.Register(s.api, huma.Operation{
		OperationID:   "removeTagFromPost",
		Method:        http.MethodDelete,
		Path:          "/api/v1/tags/{tagId}/posts/{postId}",
		Summary:       "Detach tag from post",
		Description:   "Removes the association between a tag and a post",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleRemoveTagFromPost)
}

// TagIDInput identifies a tag by path id.
type TagIDInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body dto.TagRequest
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	ID   string `path:"id" doc:"Tag ID"`
	Body dto.TagRequest
}

// AddTagToPostInput wraps the association request for Huma.
type AddTagToPostInput struct {
	Body dto.TagPostRequest
}

// RemoveTagFromPostInput identifies an association by its two ids.
type RemoveTagFromPostInput struct {
	TagID  string `path:"tagId" doc:"Tag ID"`
	PostID string `path:"postId" doc:"Post ID"`
}

// TagOutput wraps a single tag for Huma.
type TagOutput struct {
	Body dto.Tag
}

// ListTagsOutput wraps a list of tags for Huma.
type ListTagsOutput struct {
	Body []dto.Tag
}

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return &ListTagsOutput{Body: tags}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *TagIDInput) (*TagOutput, error) {
	id, err := parseID(input.ID, invalidTagID)
	if err != nil {
		return nil, err
	}

	t, err := s.services.Tag.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: *t}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	if err := s.validator.ValidateWith(input.Body, tagMessages); err != nil {
		return nil, err
	}

	t, err := s.services.Tag.CreateTag(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: *t}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	id, err := parseID(input.ID, invalidTagID)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateWith(input.Body, tagMessages); err != nil {
		return nil, err
	}

	t, err := s.services.Tag.UpdateTag(ctx, id, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: *t}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *TagIDInput) (*struct{}, error) {
	id, err := parseID(input.ID, invalidTagID)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.DeleteTag(ctx, id); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleGetTagPosts(ctx context.Context, input *TagIDInput) (*ListPostsOutput, error) {
	id, err := parseID(input.ID, invalidTagID)
	if err != nil {
		return nil, err
	}

	posts, err := s.services.Tag.PostsForTag(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ListPostsOutput{Body: posts}, nil
}

func (s *Server) handleAddTagToPost(ctx context.Context, input *AddTagToPostInput) (*struct{}, error) {
	if err := s.validator.ValidateWith(input.Body, tagPostMessages); err != nil {
		return nil, err
	}

	if err := s.services.Tag.AddTagToPost(ctx, input.Body); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *Server) handleRemoveTagFromPost(ctx context.Context, input *RemoveTagFromPostInput) (*struct{}, error) {
	tagID, err := parseID(input.TagID, invalidTagID)
	if err != nil {
		return nil, err
	}
	postID, err := parseID(input.PostID, invalidPostID)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.RemoveTagFromPost(ctx, tagID, postID); err != nil {
		return nil, err
	}
	return nil, nil
}
