package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Generate creates an opaque token by JSON encoding the payload and appending
// an 8-byte truncated HMAC-SHA256 signature. The payload is not encrypted,
// only tamper-proofed; do not put secrets in it.
func Generate[T any](payload T, secret string) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	sig := h.Sum(nil)[:8]

	return base64.RawURLEncoding.EncodeToString(data) + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Parse verifies the token's signature and decodes the JSON payload into T.
// Returns ErrInvalidToken for malformed input and ErrSignatureMismatch when
// the signature does not match the payload.
func Parse[T any](token, secret string) (T, error) {
	var payload T

	payloadEnc, sigEnc, ok := strings.Cut(token, ".")
	if !ok {
		return payload, ErrInvalidToken
	}

	data, err := base64.RawURLEncoding.DecodeString(payloadEnc)
	if err != nil {
		return payload, ErrInvalidToken
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigEnc)
	if err != nil {
		return payload, ErrInvalidToken
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	want := h.Sum(nil)[:8]

	if subtle.ConstantTimeCompare(sig, want) != 1 {
		return payload, ErrSignatureMismatch
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, ErrInvalidToken
	}

	return payload, nil
}
