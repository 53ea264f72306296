package dto

import "github.com/inkwell/inkwell-server/internal/domain"

// Request bodies mark every field omitempty so that a missing field reaches
// the handler's validator, which reports it with a resource-specific
// message.

// UserRequest is the body for creating or replacing a user.
type UserRequest struct {
	Name  string `json:"name,omitempty" validate:"required" doc:"Display name"`
	Email string `json:"email,omitempty" validate:"required" doc:"Email address"`
}

// ToEntity builds the user entity identified by id (zero for a new user).
func (r UserRequest) ToEntity(id int64) *domain.User {
	return &domain.User{ID: id, Name: r.Name, Email: r.Email}
}

// PostRequest is the body for replacing a post. Tags are managed through
// the association routes and cannot be changed here.
type PostRequest struct {
	Title   string `json:"title,omitempty" validate:"required" doc:"Post title"`
	Content string `json:"content,omitempty" validate:"required" doc:"Post body"`
	UserID  int64  `json:"userId,omitempty" validate:"required,gt=0" doc:"ID of the owning user"`
}

// CreatePostRequest is the body for creating a post, optionally with tags.
type CreatePostRequest struct {
	Title   string  `json:"title,omitempty" validate:"required" doc:"Post title"`
	Content string  `json:"content,omitempty" validate:"required" doc:"Post body"`
	UserID  int64   `json:"userId,omitempty" validate:"required,gt=0" doc:"ID of the owning user"`
	TagIDs  []int64 `json:"tagIds,omitempty" validate:"omitempty,dive,gt=0" doc:"Tags to attach to the new post"`
}

// Post returns the request without its tags.
func (r CreatePostRequest) Post() PostRequest {
	return PostRequest{Title: r.Title, Content: r.Content, UserID: r.UserID}
}

// ToEntity builds the post entity identified by id. The owner is an id-only
// reference.
func (r PostRequest) ToEntity(id int64) *domain.Post {
	return &domain.Post{
		ID:      id,
		Title:   r.Title,
		Content: r.Content,
		Owner:   domain.RefUser(r.UserID),
	}
}

// TagRequest is the body for creating or replacing a tag.
type TagRequest struct {
	Name string `json:"name,omitempty" validate:"required" doc:"Tag name"`
}

// ToEntity builds the tag entity identified by id.
func (r TagRequest) ToEntity(id int64) *domain.Tag {
	return &domain.Tag{ID: id, Name: r.Name}
}

// TagPostRequest is the body for attaching a tag to a post.
type TagPostRequest struct {
	PostID int64 `json:"postId,omitempty" validate:"required,gt=0" doc:"Post ID"`
	TagID  int64 `json:"tagId,omitempty" validate:"required,gt=0" doc:"Tag ID"`
}

// ToEntity builds the association entity.
func (r TagPostRequest) ToEntity() domain.TagPost {
	return domain.TagPost{TagID: r.TagID, PostID: r.PostID}
}
