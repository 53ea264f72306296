// Package main seeds an empty database with a sample user, post and tag.
//
// It accepts the same flags and environment as the server:
//
//	go run ./cmd/seed -db-dsn ./inkwell.db
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/inkwell/inkwell-server/internal/di"
	"github.com/inkwell/inkwell-server/internal/dto"
	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/service"
)

func main() {
	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer injector.Shutdown() //nolint:errcheck // best effort on exit

	log := do.MustInvoke[*logger.Logger](injector).WithField("component", "seed")
	users := do.MustInvoke[*service.UserService](injector)
	posts := do.MustInvoke[*service.PostService](injector)
	tags := do.MustInvoke[*service.TagService](injector)

	if err := seed(context.Background(), users, posts, tags); err != nil {
		log.WithError(err).Error("Seeding failed")
		injector.Shutdown() //nolint:errcheck // exiting anyway
		os.Exit(1)
	}
}

func seed(ctx context.Context, users *service.UserService, posts *service.PostService, tags *service.TagService) error {
	existing, err := users.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Printf("Database already has %d users, nothing to do\n", len(existing))
		return nil
	}

	u, err := users.CreateUser(ctx, dto.UserRequest{Name: "John Doe", Email: "john.doe@example.com"})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	t, err := tags.CreateTag(ctx, dto.TagRequest{Name: "TestTag"})
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}

	p, err := posts.CreatePost(ctx, dto.CreatePostRequest{
		Title:   "First Post",
		Content: "First Content",
		UserID:  u.ID,
		TagIDs:  []int64{t.ID},
	})
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	fmt.Printf("Seeded user %d, post %d and tag %d\n", u.ID, p.ID, t.ID)
	return nil
}
