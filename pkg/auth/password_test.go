package auth

import (
	"errors"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatalf("hash equals plaintext")
	}
	if !CheckPassword("correct horse battery", hash) {
		t.Fatalf("valid password rejected")
	}
	if CheckPassword("wrong", hash) {
		t.Fatalf("invalid password accepted")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("got %v, want ErrPasswordTooShort", err)
	}
	if err := ValidatePassword("long enough password"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
}
