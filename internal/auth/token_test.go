package auth_test

import (
	"testing"
	"time"

	"sentimentpulse/internal/auth"
)

func TestTokenIssueVerifyRoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	tok, err := issuer.Issue("owner@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sub, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "owner@example.com" {
		t.Fatalf("subject: %q", sub)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret-a", time.Hour)
	other := auth.NewTokenIssuer("secret-b", time.Hour)

	tok, err := issuer.Issue("owner@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(tok); err == nil {
		t.Fatalf("expected rejection for foreign secret")
	}
}

func TestTokenExpiredRejected(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -time.Minute)

	tok, err := issuer.Issue("owner@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(tok); err == nil {
		t.Fatalf("expected rejection for expired token")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	if _, err := issuer.Verify("not.a.token"); err == nil {
		t.Fatalf("expected rejection")
	}
}

func TestPasswordHashVerify(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2" {
		t.Fatalf("password stored in cleartext")
	}
	if !auth.VerifyPassword("hunter2", hash) {
		t.Fatalf("correct password rejected")
	}
	if auth.VerifyPassword("wrong", hash) {
		t.Fatalf("wrong password accepted")
	}
}
