package token

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims *Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestDecodeSignedToken(t *testing.T) {
	raw := signedToken(t, &Claims{
		Role:           "warden",
		Name:           "A. Warden",
		IsTempPassword: true,
	})

	claims, ok := Decode(raw)
	if !ok {
		t.Fatalf("Decode(%q) failed", raw)
	}
	if claims.Role != "warden" {
		t.Errorf("Role = %q, want %q", claims.Role, "warden")
	}
	if claims.Name != "A. Warden" {
		t.Errorf("Name = %q, want %q", claims.Name, "A. Warden")
	}
	if !claims.IsTempPassword {
		t.Error("IsTempPassword = false, want true")
	}
	if claims.RoleUpper() != "WARDEN" {
		t.Errorf("RoleUpper() = %q, want %q", claims.RoleUpper(), "WARDEN")
	}
}

func TestDecodeIgnoresSignature(t *testing.T) {
	// The payload is trusted as-is; a garbage signature segment must not
	// block decoding.
	raw := signedToken(t, &Claims{Role: "student"})
	parts := raw[:len(raw)-3] + "xxx"

	claims, ok := Decode(parts)
	if !ok {
		t.Fatal("Decode failed on token with altered signature")
	}
	if claims.Role != "student" {
		t.Errorf("Role = %q, want %q", claims.Role, "student")
	}
}

func TestDecodePaddedPayload(t *testing.T) {
	// Standard base64url with padding, as some issuers emit.
	payload := base64.URLEncoding.EncodeToString([]byte(`{"role":"parent"}`))
	raw := "header." + payload + ".sig"

	claims, ok := Decode(raw)
	if !ok {
		t.Fatal("Decode failed on padded payload")
	}
	if claims.Role != "parent" {
		t.Errorf("Role = %q, want %q", claims.Role, "parent")
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no dots", "notatoken"},
		{"empty payload", "header..sig"},
		{"single segment with dot", "header."},
		{"not base64", "header.!!!not-base64!!!.sig"},
		{"payload not json", "header." + base64.RawURLEncoding.EncodeToString([]byte("plain text")) + ".sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if claims, ok := Decode(tt.token); ok || claims != nil {
				t.Errorf("Decode(%q) = (%v, %v), want (nil, false)", tt.token, claims, ok)
			}
		})
	}
}

func TestDecodeMissingClaims(t *testing.T) {
	// A decodable payload with none of the portal's claims still succeeds;
	// the zero values stand in for the absent fields.
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"123"}`))
	raw := "header." + payload + ".sig"

	claims, ok := Decode(raw)
	if !ok {
		t.Fatal("Decode failed on payload without portal claims")
	}
	if claims.Role != "" || claims.IsTempPassword {
		t.Errorf("zero-claim decode: Role=%q IsTempPassword=%v", claims.Role, claims.IsTempPassword)
	}
}
