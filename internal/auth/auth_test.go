package auth

import (
	"context"
	"errors"
	"testing"

	"GreenVest/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewService(s)
}

func TestRegisterAndVerify(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "ana", "s3cret"); err != nil {
		t.Fatal(err)
	}

	ok, err := svc.Verify(ctx, "ana", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("correct password should verify")
	}

	ok, err = svc.Verify(ctx, "ana", "wrong")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("wrong password must not verify")
	}
}

func TestVerify_UnknownUser(t *testing.T) {
	svc := newTestService(t)
	ok, err := svc.Verify(context.Background(), "nobody", "x")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unknown user must not verify")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "ana", "one"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Register(ctx, "ana", "two"); !errors.Is(err, store.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestRegister_EmptyInput(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Register(context.Background(), "", "pw"); err == nil {
		t.Error("expected error for empty username")
	}
	if err := svc.Register(context.Background(), "ana", ""); err == nil {
		t.Error("expected error for empty password")
	}
}
