// Package store defines the persistence contracts for the Inkwell server.
package store

import (
	"context"

	"github.com/inkwell/inkwell-server/internal/domain"
)

// UserStore persists users. Reads populate each user's posts.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) (int64, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// PostStore persists posts. Reads populate the owner profile and tags.
// Writes never touch tag associations.
type PostStore interface {
	CreatePost(ctx context.Context, post *domain.Post) (int64, error)
	GetPost(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	UpdatePost(ctx context.Context, post *domain.Post) error
	DeletePost(ctx context.Context, id int64) error
}

// TagStore persists tags and their associations with posts.
type TagStore interface {
	CreateTag(ctx context.Context, tag *domain.Tag) (int64, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, tag *domain.Tag) error
	DeleteTag(ctx context.Context, id int64) error

	TagsForPost(ctx context.Context, postID int64) ([]*domain.Tag, error)
	// PostsForTag returns posts with only id, title and content set.
	PostsForTag(ctx context.Context, tagID int64) ([]*domain.Post, error)
	AddTagToPost(ctx context.Context, tagID, postID int64) error
	RemoveTagFromPost(ctx context.Context, tagID, postID int64) error
}

// Repositories groups the entity stores bound to one connection or
// transaction.
type Repositories interface {
	UserStore
	PostStore
	TagStore
}

// TxRunner runs fn inside a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(repos Repositories) error) error
}

// Store is the full persistence surface used by the services.
type Store interface {
	Repositories
	TxRunner

	Ping(ctx context.Context) error
	Close() error
}
