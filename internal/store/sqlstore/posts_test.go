package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell/inkwell-server/internal/domain"
	"github.com/inkwell/inkwell-server/internal/store"
)

func TestCreateAndGetPost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "John Doe", "john.doe@example.com")

	p := &domain.Post{Title: "First Post", Content: "First Content", Owner: domain.RefUser(u.ID)}
	id, err := s.CreatePost(ctx, p)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if id != 1 {
		t.Errorf("first id: got %d, want 1", id)
	}

	got, err := s.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "First Post" {
		t.Errorf("Title: got %q, want %q", got.Title, "First Post")
	}
	if got.Content != "First Content" {
		t.Errorf("Content: got %q, want %q", got.Content, "First Content")
	}
	if got.Owner.ID != u.ID {
		t.Errorf("Owner.ID: got %d, want %d", got.Owner.ID, u.ID)
	}
	if !got.Owner.Loaded() {
		t.Error("Owner should be loaded on a full read")
	}
	if got.Owner.Name != "John Doe" || got.Owner.Email != "john.doe@example.com" {
		t.Errorf("Owner: got %q <%s>", got.Owner.Name, got.Owner.Email)
	}
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Errorf("Tags: expected empty non-nil slice, got %v", got.Tags)
	}
	if !got.Owner.Loaded() {
		t.Error("full read should load the owner profile")
	}
}

func TestCreatePost_MissingOwner(t *testing.T) {
	s := newTestStore(t)

	p := &domain.Post{Title: "Orphan", Content: "nobody", Owner: domain.RefUser(99)}
	_, err := s.CreatePost(context.Background(), p)
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if p.ID != 0 {
		t.Errorf("failed insert should leave ID unset, got %d", p.ID)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPost(context.Background(), 1)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPost_WithTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "Writer", "writer@example.com")
	p := mustCreatePost(t, s, u, "Tagged", "content")
	golang := mustCreateTag(t, s, "golang")
	sql := mustCreateTag(t, s, "sql")

	for _, tag := range []*domain.Tag{sql, golang} {
		if err := s.AddTagToPost(ctx, tag.ID, p.ID); err != nil {
			t.Fatalf("AddTagToPost: %v", err)
		}
	}

	got, err := s.GetPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(got.Tags))
	}
	if got.Tags[0].Name != "golang" || got.Tags[1].Name != "sql" {
		t.Errorf("tags: got [%s %s], want [golang sql]", got.Tags[0].Name, got.Tags[1].Name)
	}
}

func TestListPosts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "Writer", "writer@example.com")
	p1 := mustCreatePost(t, s, u, "one", "1")
	p2 := mustCreatePost(t, s, u, "two", "2")
	tag := mustCreateTag(t, s, "only-two")
	if err := s.AddTagToPost(ctx, tag.ID, p2.ID); err != nil {
		t.Fatalf("AddTagToPost: %v", err)
	}

	posts, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != p1.ID || posts[1].ID != p2.ID {
		t.Errorf("order: got [%d %d]", posts[0].ID, posts[1].ID)
	}
	if posts[0].Tags == nil || len(posts[0].Tags) != 0 {
		t.Errorf("post 1 tags: expected empty non-nil, got %v", posts[0].Tags)
	}
	if len(posts[1].Tags) != 1 || posts[1].Tags[0].ID != tag.ID {
		t.Errorf("post 2 tags: got %v", posts[1].Tags)
	}
}

func TestListPosts_Empty(t *testing.T) {
	s := newTestStore(t)

	posts, err := s.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if posts == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestUpdatePost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustCreateUser(t, s, "Alice", "alice@example.com")
	bob := mustCreateUser(t, s, "Bob", "bob@example.com")
	p := mustCreatePost(t, s, alice, "draft", "rough")
	tag := mustCreateTag(t, s, "kept")
	if err := s.AddTagToPost(ctx, tag.ID, p.ID); err != nil {
		t.Fatalf("AddTagToPost: %v", err)
	}

	p.Title = "final"
	p.Content = "polished"
	p.Owner = domain.RefUser(bob.ID)
	p.Tags = nil
	if err := s.UpdatePost(ctx, p); err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}

	got, err := s.GetPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "final" || got.Content != "polished" {
		t.Errorf("got %q/%q, want final/polished", got.Title, got.Content)
	}
	if got.Owner.ID != bob.ID {
		t.Errorf("Owner.ID: got %d, want %d", got.Owner.ID, bob.ID)
	}
	if len(got.Tags) != 1 {
		t.Errorf("update must not touch tag associations, got %d tags", len(got.Tags))
	}
}

func TestUpdatePost_NotFound(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "A", "a@example.com")

	err := s.UpdatePost(context.Background(), &domain.Post{ID: 5, Title: "t", Content: "c", Owner: u.Ref()})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePost_MissingOwner(t *testing.T) {
	s := newTestStore(t)
	u := mustCreateUser(t, s, "A", "a@example.com")
	p := mustCreatePost(t, s, u, "t", "c")

	p.Owner = domain.RefUser(404)
	if err := s.UpdatePost(context.Background(), p); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeletePost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "A", "a@example.com")
	p1 := mustCreatePost(t, s, u, "one", "1")
	p2 := mustCreatePost(t, s, u, "two", "2")
	tag := mustCreateTag(t, s, "t")
	if err := s.AddTagToPost(ctx, tag.ID, p2.ID); err != nil {
		t.Fatalf("AddTagToPost: %v", err)
	}

	before, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}

	if err := s.DeletePost(ctx, p2.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	after, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(after) != len(before)-1 {
		t.Errorf("list size: got %d, want %d", len(after), len(before)-1)
	}
	if after[0].ID != p1.ID {
		t.Errorf("remaining post: got %d, want %d", after[0].ID, p1.ID)
	}

	posts, err := s.PostsForTag(ctx, tag.ID)
	if err != nil {
		t.Fatalf("PostsForTag: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("association should be removed with the post, got %d", len(posts))
	}

	if err := s.DeletePost(ctx, p2.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
