package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/sangga"
)

// SessionCookieName names the cookie carrying the session ID.
const SessionCookieName = "sangga_session"

type sessionKey struct{}

// withSession attaches the caller's session to the request context,
// creating one and setting the cookie when the caller has none or it
// expired.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.findOrCreateSession(w, r)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) findOrCreateSession(w http.ResponseWriter, r *http.Request) (*sangga.Session, error) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		session, err := s.Sessions.FindSessionByID(r.Context(), c.Value)
		if err == nil {
			return session, nil
		} else if sangga.ErrorCode(err) != sangga.ENOTFOUND {
			return nil, err
		}
	}

	session, err := s.Sessions.CreateSession(r.Context())
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return session, nil
}

// sessionFromContext returns the session attached by withSession.
func sessionFromContext(ctx context.Context) *sangga.Session {
	session, _ := ctx.Value(sessionKey{}).(*sangga.Session)
	return session
}
