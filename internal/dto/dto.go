// Package dto provides the transfer representations exposed by the API and
// the mapping between them and domain entities.
//
// Mapping is total and side-effect free. Nothing here validates input;
// that is the API layer's job.
package dto

import "github.com/inkwell/inkwell-server/internal/domain"

// User is the client-facing representation of a user.
type User struct {
	ID    int64  `json:"id" doc:"User ID"`
	Name  string `json:"name" doc:"Display name"`
	Email string `json:"email" doc:"Email address"`
	Posts []Post `json:"posts" doc:"Posts written by the user"`
}

// Post is the client-facing representation of a post.
// The owner is flattened to its id.
type Post struct {
	ID      int64  `json:"id" doc:"Post ID"`
	Title   string `json:"title" doc:"Post title"`
	Content string `json:"content" doc:"Post body"`
	UserID  int64  `json:"userId" doc:"ID of the owning user"`
	Tags    []Tag  `json:"tags,omitempty" doc:"Tags attached to the post"`
}

// Tag is the client-facing representation of a tag.
type Tag struct {
	ID   int64  `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// UserFromEntity maps a user and each of its posts.
func UserFromEntity(u *domain.User) User {
	out := User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Posts: make([]Post, 0, len(u.Posts)),
	}
	for _, p := range u.Posts {
		out.Posts = append(out.Posts, PostFromEntity(p))
	}
	return out
}

// UsersFromEntities maps a slice of users. The result is never nil.
func UsersFromEntities(users []*domain.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, UserFromEntity(u))
	}
	return out
}

// PostFromEntity maps a post. The owner is reduced to its id and tags are
// mapped when present.
func PostFromEntity(p *domain.Post) Post {
	out := Post{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		UserID:  p.Owner.ID,
	}
	if p.Tags != nil {
		out.Tags = TagsFromEntities(p.Tags)
	}
	return out
}

// PostsFromEntities maps a slice of posts. The result is never nil.
func PostsFromEntities(posts []*domain.Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		out = append(out, PostFromEntity(p))
	}
	return out
}

// TagFromEntity maps a tag.
func TagFromEntity(t *domain.Tag) Tag {
	return Tag{ID: t.ID, Name: t.Name}
}

// TagsFromEntities maps a slice of tags. The result is never nil.
func TagsFromEntities(tags []*domain.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagFromEntity(t))
	}
	return out
}
