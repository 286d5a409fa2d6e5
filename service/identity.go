package service

import (
	"encoding/base32"
	"net/http"
	"strings"

	"blogstore/app/models"

	"golang.org/x/crypto/sha3"
)

var principalEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// CallerFromRequest derives the caller principal from the bearer token.
// Requests without a token act as the anonymous principal. The token itself
// is not verified here.
func CallerFromRequest(r *http.Request) models.Principal {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return models.AnonymousPrincipal
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return models.AnonymousPrincipal
	}
	return PrincipalFromToken(token)
}

// PrincipalFromToken hashes token with SHA3-224 and renders the digest as
// dash-separated groups of five lowercase base32 characters.
func PrincipalFromToken(token string) models.Principal {
	digest := sha3.Sum224([]byte(token))
	encoded := strings.ToLower(principalEncoding.EncodeToString(digest[:]))

	var b strings.Builder
	for i := 0; i < len(encoded); i += 5 {
		if i > 0 {
			b.WriteByte('-')
		}
		end := i + 5
		if end > len(encoded) {
			end = len(encoded)
		}
		b.WriteString(encoded[i:end])
	}
	return models.Principal(b.String())
}
