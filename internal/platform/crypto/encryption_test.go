package crypto

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := New("0000000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !svc.Configured() {
		t.Fatal("expected configured service")
	}

	cipher, err := svc.EncryptString("totp-seed")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Equal(cipher, []byte("totp-seed")) {
		t.Fatal("expected ciphertext to differ from plaintext")
	}

	plain, err := svc.DecryptString(cipher)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "totp-seed" {
		t.Fatalf("expected round trip, got %q", plain)
	}
}

func TestUnconfiguredPassesThrough(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if svc.Configured() {
		t.Fatal("expected unconfigured service")
	}

	out, err := svc.Encrypt([]byte("plain"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if string(out) != "plain" {
		t.Fatalf("expected pass-through, got %q", out)
	}
}

func TestNewRejectsShortKey(t *testing.T) {
	if _, err := New("too-short"); err == nil {
		t.Fatal("expected error for short key")
	}
}
