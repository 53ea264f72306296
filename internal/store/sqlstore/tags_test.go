package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/inkwell/inkwell-server/internal/domain"
	"github.com/inkwell/inkwell-server/internal/store"
)

func TestCreateAndGetTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tag := &domain.Tag{Name: "TestTag"}
	id, err := s.CreateTag(ctx, tag)
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if id != 1 {
		t.Errorf("first id: got %d, want 1", id)
	}

	got, err := s.GetTag(ctx, id)
	if err != nil {
		t.Fatalf("GetTag: %v", err)
	}
	if got.Name != "TestTag" {
		t.Errorf("Name: got %q, want %q", got.Name, "TestTag")
	}
}

func TestGetTag_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetTag(context.Background(), 3)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}

	mustCreateTag(t, s, "b")
	mustCreateTag(t, s, "a")

	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Name != "b" || tags[1].Name != "a" {
		t.Errorf("expected id order [b a], got [%s %s]", tags[0].Name, tags[1].Name)
	}
}

func TestUpdateTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	tag := mustCreateTag(t, s, "before")

	tag.Name = "after"
	if err := s.UpdateTag(ctx, tag); err != nil {
		t.Fatalf("UpdateTag: %v", err)
	}

	got, err := s.GetTag(ctx, tag.ID)
	if err != nil {
		t.Fatalf("GetTag: %v", err)
	}
	if got.Name != "after" {
		t.Errorf("Name: got %q, want %q", got.Name, "after")
	}

	if err := s.UpdateTag(ctx, &domain.Tag{ID: 77, Name: "x"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "A", "a@example.com")
	p := mustCreatePost(t, s, u, "t", "c")
	tag := mustCreateTag(t, s, "doomed")
	if err := s.AddTagToPost(ctx, tag.ID, p.ID); err != nil {
		t.Fatalf("AddTagToPost: %v", err)
	}

	if err := s.DeleteTag(ctx, tag.ID); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}

	tags, err := s.TagsForPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("TagsForPost: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("association should be removed with the tag, got %d", len(tags))
	}

	if err := s.DeleteTag(ctx, tag.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestAddTagToPost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "A", "a@example.com")
	tag := mustCreateTag(t, s, "TestTag")
	p := mustCreatePost(t, s, u, "First Post", "First Content")

	if err := s.AddTagToPost(ctx, tag.ID, p.ID); err != nil {
		t.Fatalf("AddTagToPost: %v", err)
	}

	tags, err := s.TagsForPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("TagsForPost: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("expected tag exactly once, got %d", len(tags))
	}
	if tags[0].ID != 1 || tags[0].Name != "TestTag" {
		t.Errorf("got %+v, want {1 TestTag}", tags[0])
	}

	posts, err := s.PostsForTag(ctx, tag.ID)
	if err != nil {
		t.Fatalf("PostsForTag: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	got := posts[0]
	if got.ID != p.ID || got.Title != "First Post" || got.Content != "First Content" {
		t.Errorf("got %+v", got)
	}
	if got.Tags != nil {
		t.Error("PostsForTag should not populate tags")
	}
	if got.Owner.Loaded() {
		t.Error("PostsForTag should return an id-only owner reference")
	}
}

func TestAddTagToPost_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "A", "a@example.com")
	tag := mustCreateTag(t, s, "t")
	p := mustCreatePost(t, s, u, "t", "c")

	if err := s.AddTagToPost(ctx, tag.ID, p.ID); err != nil {
		t.Fatalf("AddTagToPost: %v", err)
	}
	err := s.AddTagToPost(ctx, tag.ID, p.ID)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	tags, err := s.TagsForPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("TagsForPost: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("duplicate attach must not add a row, got %d", len(tags))
	}
}

func TestAddTagToPost_MissingEndpoint(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "A", "a@example.com")
	tag := mustCreateTag(t, s, "t")
	p := mustCreatePost(t, s, u, "t", "c")

	tests := []struct {
		name   string
		tagID  int64
		postID int64
	}{
		{"missing tag", 500, p.ID},
		{"missing post", tag.ID, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddTagToPost(ctx, tt.tagID, tt.postID)
			if !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestRemoveTagFromPost(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "A", "a@example.com")
	keep := mustCreateTag(t, s, "keep")
	drop := mustCreateTag(t, s, "drop")
	p := mustCreatePost(t, s, u, "t", "c")

	for _, tag := range []*domain.Tag{keep, drop} {
		if err := s.AddTagToPost(ctx, tag.ID, p.ID); err != nil {
			t.Fatalf("AddTagToPost: %v", err)
		}
	}

	if err := s.RemoveTagFromPost(ctx, drop.ID, p.ID); err != nil {
		t.Fatalf("RemoveTagFromPost: %v", err)
	}

	tags, err := s.TagsForPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("TagsForPost: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != keep.ID {
		t.Errorf("expected only %q to remain, got %+v", keep.Name, tags)
	}

	if err := s.RemoveTagFromPost(ctx, drop.ID, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second remove: expected ErrNotFound, got %v", err)
	}
}

func TestTagsForPost_UnknownPost(t *testing.T) {
	s := newTestStore(t)

	tags, err := s.TagsForPost(context.Background(), 123)
	if err != nil {
		t.Fatalf("TagsForPost: %v", err)
	}
	if tags == nil || len(tags) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", tags)
	}
}
