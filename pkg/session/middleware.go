package session

import "net/http"

// Middleware ensures every request carries a session ID and stores it in the
// request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _, err := m.Ensure(w, r)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), id)))
	})
}
