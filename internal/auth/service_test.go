package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	svc := NewService(DefaultParams)

	encoded, err := svc.HashPassword("s3cret-passphrase")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", encoded)
	}
	if strings.Contains(encoded, "s3cret-passphrase") {
		t.Fatal("hash leaks the password")
	}

	ok, err := svc.VerifyPassword(encoded, "s3cret-passphrase")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}

	ok, err = svc.VerifyPassword(encoded, "wrong-password")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	svc := NewService(DefaultParams)

	h1, err := svc.HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := svc.HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ (random salt)")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	svc := NewService(DefaultParams)

	if _, err := svc.VerifyPassword("plaintext-password", "anything"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if _, err := svc.VerifyPassword("$argon2i$v=19$m=1,t=1,p=1$AAAA$AAAA", "x"); err == nil {
		t.Fatal("expected error for non-argon2id hash")
	}
}
