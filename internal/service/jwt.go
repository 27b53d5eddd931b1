package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	tokenIssuer   = "procuredesk-core"
	tokenAudience = "procuredesk"
)

// --- JWT implementation (HS256 with stdlib) ---

// jwtHeader is the fixed base64url-encoded header for HS256.
var jwtHeader = base64URLEncode([]byte(`{"alg":"HS256","typ":"JWT"}`))

// signJWT serializes claims and signs them with HMAC-SHA256.
func signJWT(secret []byte, claims any) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	payloadB64 := base64URLEncode(payload)
	signingInput := jwtHeader + "." + payloadB64

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(signingInput))
	sig := base64URLEncode(mac.Sum(nil))

	return signingInput + "." + sig, nil
}

// verifyJWT checks the signature and decodes the payload into claims.
// Expiry, audience, and issuer checks are the caller's responsibility
// since they live inside the typed claims.
func verifyJWT(secret []byte, tokenStr string, claims any) error {
	parts := strings.SplitN(tokenStr, ".", 3)
	if len(parts) != 3 {
		return errors.New("malformed token")
	}

	signingInput := parts[0] + "." + parts[1]
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(signingInput))
	expectedSig := base64URLEncode(mac.Sum(nil))

	if !hmac.Equal([]byte(parts[2]), []byte(expectedSig)) {
		return errors.New("invalid signature")
	}

	payload, err := base64URLDecode(parts[1])
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	if err := json.Unmarshal(payload, claims); err != nil {
		return fmt.Errorf("unmarshal claims: %w", err)
	}
	return nil
}

func checkStandardClaims(expiry int64, audience, issuer string) error {
	if time.Now().Unix() > expiry {
		return errors.New("token expired")
	}
	if audience != tokenAudience {
		return errors.New("invalid token audience")
	}
	if issuer != tokenIssuer {
		return errors.New("invalid token issuer")
	}
	return nil
}

// --- Helpers ---

func base64URLEncode(data []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

func base64URLDecode(s string) ([]byte, error) {
	// Add padding back
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}
	return base64.URLEncoding.DecodeString(s)
}
