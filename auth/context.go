package auth

import "context"

// Viewer is the public-safe projection of the authenticated user attached to
// a request: id and username, never the password hash. It is recomputed per
// request from the bearer token; nothing identity-related is stored
// server-side between requests.
type Viewer struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// contextKey is an unexported type for context keys, so no other package can
// collide with or spoof the viewer entry.
type contextKey string

const viewerContextKey contextKey = "auth_viewer"

// WithViewer returns a child context carrying the viewer. Passing nil is
// allowed and means the request is anonymous.
func WithViewer(ctx context.Context, v *Viewer) context.Context {
	return context.WithValue(ctx, viewerContextKey, v)
}

// ViewerFromContext returns the viewer for the request, or nil when the
// request is anonymous. Resolvers branch on nil to produce their
// authentication-required errors; the middleware never does.
func ViewerFromContext(ctx context.Context) *Viewer {
	v, _ := ctx.Value(viewerContextKey).(*Viewer)
	return v
}
