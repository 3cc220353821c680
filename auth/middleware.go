package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/user/todoserve-go/apperror"
	"github.com/user/todoserve-go/users"
)

// Authenticator returns middleware that resolves the request's identity from
// the Authorization header and attaches it to the context as a *Viewer.
//
// Unlike a guard-style middleware, this never rejects a request. Missing
// auth is a normal, frequent case, and an expired or forged token must
// behave exactly like no token at all: the request proceeds as anonymous and
// the resolver layer decides what anonymity means per operation. The GraphQL
// endpoint serves public operations (register, login) on the same route as
// authenticated ones, so rejecting here would break them.
func Authenticator(tokens *TokenService, store users.Store) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				// Present but not a bearer token: treat as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			userID, err := tokens.Verify(parts[1])
			if err != nil {
				// Expired or forged tokens degrade to anonymous, never
				// to an error response.
				log.Printf("auth: token verification failed: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			user, err := store.GetByID(r.Context(), userID)
			if err != nil {
				if apperror.IsNotFoundError(err) {
					// Valid token for an account that no longer exists.
					log.Printf("auth: token for deleted user %d", userID)
				} else {
					log.Printf("auth: failed to resolve user %d: %v", userID, err)
				}
				next.ServeHTTP(w, r)
				return
			}

			viewer := &Viewer{ID: user.ID, Username: user.Username}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
		})
	}
}
