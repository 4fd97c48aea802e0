package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	// IssuerWeb is the issuer of tokens signed by the web service.
	IssuerWeb = "devportfolio-web"

	// TokenTTL is the lifetime of a signed token. A token is signed per call.
	TokenTTL = 5 * time.Minute

	bearerPrefix = "Bearer "
)

// Claims are the claims of a service token.
type Claims struct {
	jwt.RegisteredClaims
}

// SignToken signs a HS256 token valid from now for TokenTTL.
func SignToken(secret, issuer string, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// ParseToken validates a token signed with secret.
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// RequireToken is a net/http middleware accepting only requests with a valid
// bearer token. With an empty secret every request passes.
func RequireToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				unauthorized(w, r, ErrInvalidToken)
				return
			}

			if _, err := ParseToken(secret, strings.TrimPrefix(header, bearerPrefix)); err != nil {
				unauthorized(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	log.Warn().Err(err).Str("uri", r.URL.RequestURI()).Msg("rejected request without valid token")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
