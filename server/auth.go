package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/mathscript/internal/config"
	"github.com/dekarrin/mathscript/server/serr"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthKey is a key in the context of a request populated by the auth
// middleware.
type AuthKey int64

const (
	// AuthCallerLabel retrieves the label of the API key used to
	// authenticate, for logging purposes.
	AuthCallerLabel AuthKey = iota
)

// authHandler is middleware that requires a valid Bearer JWT, issued
// previously via HTTPCreateToken, on every request it guards. Grounded on
// tunaq/server/token.go's AuthHandler, simplified to a single shared signing
// secret and no user database: the claim subject is an API key label rather
// than a user ID.
type authHandler struct {
	secret        []byte
	unauthedDelay time.Duration
	next          http.Handler
}

func requireAuth(secret []byte, unauthedDelay time.Duration, next http.Handler) http.Handler {
	return &authHandler{secret: secret, unauthedDelay: unauthedDelay, next: next}
}

func (ah *authHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	tok, err := getBearerToken(req)
	if err != nil {
		result := jsonUnauthorized("", err.Error())
		time.Sleep(ah.unauthedDelay)
		result.writeResponse(w, req)
		return
	}

	label, err := validateJWT(tok, ah.secret)
	if err != nil {
		result := jsonUnauthorized("", err.Error())
		time.Sleep(ah.unauthedDelay)
		result.writeResponse(w, req)
		return
	}

	ctx := context.WithValue(req.Context(), AuthCallerLabel, label)
	ah.next.ServeHTTP(w, req.WithContext(ctx))
}

func getBearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	token := strings.TrimSpace(authParts[1])

	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return token, nil
}

func validateJWT(tok string, secret []byte) (string, error) {
	var label string

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}
		label = subj
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("mathscriptd"), jwt.WithLeeway(time.Minute))

	if err != nil {
		return "", err
	}
	return label, nil
}

// generateJWT issues a token that asserts the bearer authenticated as the
// API key with the given label.
func generateJWT(secret []byte, label string) (string, error) {
	claims := &jwt.MapClaims{
		"iss": "mathscriptd",
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": label,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	tokStr, err := tok.SignedString(secret)
	if err != nil {
		return "", err
	}
	return tokStr, nil
}

// authenticateAPIKey checks presented against every configured API key's
// bcrypt hash and returns the label of the first match, the same linear
// bcrypt-compare loop tunaq/server/tunas/users.go uses for password login
// (there is no username to index by; an API key is presented bare).
func authenticateAPIKey(keys []config.APIKey, presented string) (label string, err error) {
	for _, k := range keys {
		if bcrypt.CompareHashAndPassword([]byte(k.HashedKey), []byte(presented)) == nil {
			return k.Label, nil
		}
	}
	return "", serr.ErrBadCredentials
}
