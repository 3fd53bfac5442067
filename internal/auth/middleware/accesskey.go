package auth

import (
	"crypto/subtle"
	"net/http"
)

// AccessKeyMatches compares two secrets in constant time.
func AccessKeyMatches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// RequireAccessKey rejects requests whose X-Access-Key header does not match
// key. An empty key disables the check.
func RequireAccessKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" && !AccessKeyMatches(r.Header.Get("X-Access-Key"), key) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
