package auth

import (
	"bytes"
	"testing"
)

func TestVerifyPassword(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() failed: %v", err)
	}
	hash := HashPassword("secret password", salt)

	if !VerifyPassword("secret password", salt, hash) {
		t.Error("VerifyPassword() = false for the correct password")
	}
	if VerifyPassword("wrong password", salt, hash) {
		t.Error("VerifyPassword() = true for the wrong password")
	}

	otherSalt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() failed: %v", err)
	}
	if VerifyPassword("secret password", otherSalt, hash) {
		t.Error("VerifyPassword() = true with a different salt")
	}
}

func TestHashResetCode_Deterministic(t *testing.T) {
	a := HashResetCode("123456")
	b := HashResetCode("123456")
	if !bytes.Equal(a, b) {
		t.Error("HashResetCode() is not deterministic")
	}
	if bytes.Equal(a, HashResetCode("654321")) {
		t.Error("HashResetCode() collides for different codes")
	}
}
