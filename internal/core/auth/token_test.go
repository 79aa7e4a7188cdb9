package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tk := &Tokens{Secret: []byte("test-secret"), Issuer: "maeul-forum", TTL: time.Hour}

	tok, err := tk.Issue(42)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	claims, err := tk.Parse(tok)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UID != 42 {
		t.Errorf("uid = %d, want 42", claims.UID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tk := &Tokens{Secret: []byte("test-secret"), Issuer: "maeul-forum", TTL: time.Hour}
	other := &Tokens{Secret: []byte("other-secret"), Issuer: "maeul-forum", TTL: time.Hour}

	tok, err := tk.Issue(1)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := other.Parse(tok); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestTokenWrongIssuer(t *testing.T) {
	tk := &Tokens{Secret: []byte("test-secret"), Issuer: "somewhere-else", TTL: time.Hour}
	parser := &Tokens{Secret: []byte("test-secret"), Issuer: "maeul-forum", TTL: time.Hour}

	tok, err := tk.Issue(1)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := parser.Parse(tok); err == nil {
		t.Error("token from another issuer was accepted")
	}
}

func TestTokenExpired(t *testing.T) {
	tk := &Tokens{Secret: []byte("test-secret"), Issuer: "maeul-forum", TTL: -2 * time.Hour}

	tok, err := tk.Issue(1)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := tk.Parse(tok); err == nil {
		t.Error("expired token was accepted")
	}
}
