package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/timeouts"
	"github.com/dalemusser/dailyhub/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user resolved by Gate.RequireBearer & “found?” flag.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok && u != nil
}

// WithTestUser injects u into the request context the same way the gate
// does. Handler tests use it to bypass token handling.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Bearer gate                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// UserFetcher resolves a token subject to a stored user.
// It returns (nil, nil) when no such user exists and an error only when the
// store itself failed.
type UserFetcher interface {
	FetchByEmail(ctx context.Context, email string) (*models.User, error)
}

// Gate authenticates API requests carrying "Authorization: Bearer <token>".
type Gate struct {
	Tokens *TokenService
	Users  UserFetcher
	Log    *zap.Logger
}

// NewGate wires a Gate.
func NewGate(tokens *TokenService, users UserFetcher, logger *zap.Logger) *Gate {
	return &Gate{Tokens: tokens, Users: users, Log: logger}
}

// RequireBearer rejects the request unless it carries a valid session token
// whose subject is a known user. On success the user is available through
// CurrentUser.
//
//   - no credential → 403 "Not authenticated"
//   - a credential under another scheme → 403 "Invalid authentication credentials"
//   - bad signature, malformed, expired, or a purpose-tagged token → 401
//   - subject no longer exists → 401
//
// Token checks run before the single user lookup; a request that fails them
// never reaches the store.
func (g *Gate) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := BearerToken(r)
		if !ok {
			apierr.Write(w, credentialError(r))
			return
		}

		claims, err := g.Tokens.ValidateSession(raw)
		if err != nil {
			g.Log.Debug("bearer token rejected", zap.Error(err))
			apierr.Write(w, apierr.ErrInvalidCredentials)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		u, err := g.Users.FetchByEmail(ctx, claims.Subject)
		if err != nil {
			g.Log.Error("bearer: user lookup failed", zap.Error(err))
			apierr.Write(w, apierr.ErrInternal)
			return
		}
		if u == nil {
			apierr.Write(w, apierr.ErrInvalidCredentials)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// credentialError picks the 403 for a request BearerToken refused.
func credentialError(r *http.Request) *apierr.Error {
	scheme, cred, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if found && strings.TrimSpace(cred) != "" && !strings.EqualFold(scheme, "Bearer") {
		return apierr.ErrBadAuthScheme
	}
	return apierr.ErrNotAuthenticated
}

// BearerToken extracts the credential from the Authorization header.
// The scheme match is case-insensitive; an empty credential counts as absent.
func BearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return "", false
	}
	scheme, cred, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	cred = strings.TrimSpace(cred)
	if cred == "" {
		return "", false
	}
	return cred, true
}
