package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCreateTagTrimsAndDefaults(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com")
	ctx := context.Background()

	tag, err := env.tags.CreateTag(ctx, "alice", "  work  ", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tag.Name != "work" {
		t.Errorf("name = %q, want trimmed", tag.Name)
	}
	if tag.Color == "" {
		t.Error("color should fall back to the default")
	}
	if tag.CreatedBy != "alice" {
		t.Errorf("created_by = %q", tag.CreatedBy)
	}
}

func TestCreateTagValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com")
	ctx := context.Background()

	if _, err := env.tags.CreateTag(ctx, "alice", "   ", ""); !IsValidation(err) {
		t.Fatalf("blank name: want validation error, got %v", err)
	}
	if _, err := env.tags.CreateTag(ctx, "alice", strings.Repeat("x", 51), ""); !IsValidation(err) {
		t.Fatalf("long name: want validation error, got %v", err)
	}

	// 50 characters of multibyte text stays within the limit
	if _, err := env.tags.CreateTag(ctx, "alice", strings.Repeat("é", 50), ""); err != nil {
		t.Fatalf("50-char multibyte name: %v", err)
	}
	if _, err := env.tags.CreateTag(ctx, "alice", strings.Repeat("é", 51), ""); !IsValidation(err) {
		t.Fatalf("51-char multibyte name: want validation error, got %v", err)
	}
}

func TestCreateTagDuplicateAcrossUsers(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com")
	env.seedUser(t, "bob", "bob@example.com")
	ctx := context.Background()

	if _, err := env.tags.CreateTag(ctx, "alice", "shared", ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := env.tags.CreateTag(ctx, "bob", "shared", "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestTagListScopedToCreator(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com")
	env.seedUser(t, "bob", "bob@example.com")
	ctx := context.Background()

	if _, err := env.tags.CreateTag(ctx, "alice", "mine", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.tags.CreateTag(ctx, "bob", "theirs", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	listed, err := env.tags.ListTags(ctx, "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "mine" {
		t.Fatalf("listed = %+v, want only alice's tag", listed)
	}
}

func TestUpdateTagRenameConflict(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com")
	ctx := context.Background()

	if _, err := env.tags.CreateTag(ctx, "alice", "taken", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	tag, err := env.tags.CreateTag(ctx, "alice", "renameme", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "taken"
	if _, err := env.tags.UpdateTag(ctx, "alice", tag.ID, &name, nil); !errors.Is(err, ErrConflict) {
		t.Fatalf("rename to taken name: want ErrConflict, got %v", err)
	}

	// Re-submitting a tag's own name is not a conflict
	same := "renameme"
	if _, err := env.tags.UpdateTag(ctx, "alice", tag.ID, &same, nil); err != nil {
		t.Fatalf("rename to own name: %v", err)
	}
}

func TestDeleteTagNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com")
	ctx := context.Background()

	if err := env.tags.DeleteTag(ctx, "alice", 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
