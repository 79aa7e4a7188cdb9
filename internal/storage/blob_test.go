package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	ctx := context.Background()

	n, err := s.Put(ctx, "uploads/a.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Put size = %d, want 5", n)
	}

	body, size, err := s.Get(ctx, "uploads/a.txt")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer body.Close()
	if size != 5 {
		t.Errorf("Get size = %d, want 5", size)
	}
	b, _ := io.ReadAll(body)
	if string(b) != "hello" {
		t.Errorf("Get body = %q, want %q", b, "hello")
	}

	if err := s.Delete(ctx, "uploads/a.txt"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, _, err := s.Get(ctx, "uploads/a.txt"); err != ErrNotFound {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "uploads/a.txt"); err != ErrNotFound {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestDiskStoreRejectsTraversal(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	ctx := context.Background()

	for _, key := range []string{"../escape", "/abs/path", "."} {
		if _, err := s.Put(ctx, key, strings.NewReader("x")); err == nil {
			t.Errorf("Put(%q) should have been rejected", key)
		}
	}
}

func TestNewObjectKey(t *testing.T) {
	k1 := NewObjectKey("photo.JPG")
	k2 := NewObjectKey("photo.JPG")

	if !strings.HasPrefix(k1, "uploads/") {
		t.Errorf("key %q missing uploads/ prefix", k1)
	}
	if !strings.HasSuffix(k1, ".jpg") {
		t.Errorf("key %q should keep a lowercased extension", k1)
	}
	if k1 == k2 {
		t.Error("consecutive keys must differ")
	}
	if !strings.Contains(NewObjectKey("noext"), "uploads/") {
		t.Error("extensionless names should still produce a key")
	}
}
