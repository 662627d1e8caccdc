package owner

import (
	"context"
	"errors"
	"testing"
)

func TestFromContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("empty context should carry no owner")
	}
	if _, ok := FromContext(WithOwner(context.Background(), "")); ok {
		t.Fatal("blank owner should not count as authenticated")
	}

	ctx := WithOwner(context.Background(), "user-1")
	id, ok := FromContext(ctx)
	if !ok || id != "user-1" {
		t.Fatalf("FromContext = %q, %v; want user-1, true", id, ok)
	}
}

func TestRequire(t *testing.T) {
	if _, err := Require(context.Background()); !errors.Is(err, ErrNoOwner) {
		t.Fatalf("Require error = %v, want ErrNoOwner", err)
	}
	id, err := Require(WithOwner(context.Background(), "user-2"))
	if err != nil || id != "user-2" {
		t.Fatalf("Require = %q, %v", id, err)
	}
}
