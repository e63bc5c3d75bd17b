package testutil

import (
	"net/http"
	"time"

	"trustbridge/pkg/requestcontext"
)

// WithUserID stamps an authenticated user ID onto the request context, the
// way the auth middleware does for real requests.
func WithUserID(req *http.Request, userID string) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// WithRequestTime pins the request clock so date-dependent behavior is
// deterministic in tests.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
