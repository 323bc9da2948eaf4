package upbit

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// authToken builds the JWT bearer token the Upbit API expects. The query
// hash must cover the exact query string sent, in unescaped form, and every
// token carries a fresh nonce, so tokens are single-use.
func authToken(accessKey, secretKey, rawQuery string) (string, error) {
	claims := jwt.MapClaims{
		"access_key": accessKey,
		"nonce":      uuid.NewString(),
	}
	if rawQuery != "" {
		unescaped, err := url.QueryUnescape(rawQuery)
		if err != nil {
			return "", fmt.Errorf("unescape query for auth hash: %w", err)
		}
		sum := sha512.Sum512([]byte(unescaped))
		claims["query_hash"] = hex.EncodeToString(sum[:])
		claims["query_hash_alg"] = "SHA512"
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("sign auth token: %w", err)
	}
	return token, nil
}
