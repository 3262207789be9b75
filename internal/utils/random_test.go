package utils

import (
	"strings"
	"testing"
)

func TestRandomToken_Length(t *testing.T) {
	token, err := RandomToken(ResetTokenLength)
	if err != nil {
		t.Fatalf("генерация токена: %v", err)
	}
	if len(token) != ResetTokenLength {
		t.Fatalf("длина токена %d, ожидалось %d", len(token), ResetTokenLength)
	}
}

func TestRandomToken_Charset(t *testing.T) {
	token, err := RandomToken(200)
	if err != nil {
		t.Fatalf("генерация токена: %v", err)
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenChars, r) {
			t.Fatalf("недопустимый символ в токене: %q", r)
		}
	}
}

func TestRandomToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := RandomToken(ResetTokenLength)
		if err != nil {
			t.Fatalf("генерация токена: %v", err)
		}
		if seen[token] {
			t.Fatal("токены повторяются")
		}
		seen[token] = true
	}
}
