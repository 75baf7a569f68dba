package auth

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pass1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "pass1" {
		t.Fatal("hash must not equal the plaintext")
	}
	if hash == "" {
		t.Fatal("hash must not be empty")
	}

	hash2, err := HashPassword("pass1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == hash2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if err := VerifyPassword("correct horse", hash); err != nil {
		t.Errorf("expected match, got %v", err)
	}
	if err := VerifyPassword("wrong", hash); err == nil {
		t.Error("expected mismatch for wrong password")
	}
}
