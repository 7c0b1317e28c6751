package handlers

import (
	"net/http"
	"time"

	"playlist-viewer/internal/session"
)

// SessionCookieName is the name of the viewer session cookie
const SessionCookieName = "playlist_viewer_session"

// viewerSession returns the caller's session, creating one when the request
// carries no live session. The cookie is re-issued on every call so its
// lifetime slides with the server-side TTL.
func (h *Handlers) viewerSession(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		id = cookie.Value
	}

	sess, _ := h.sessions.GetOrCreate(id)
	ttl := h.sessions.TTL()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID(),
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return sess
}
