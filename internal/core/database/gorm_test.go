package database

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(Opts{Driver: "oracle", DSN: "whatever"})
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Fatalf("err = %v, want ErrUnsupportedDriver", err)
	}
	if errors.Is(err, gorm.ErrInvalidDB) {
		t.Fatalf("driver error must not alias gorm's own sentinel")
	}
}
