package session

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	cookieName = "storefront"
	valueSID   = "sid"
)

// Manager keeps only the session id on the client, in a signed cookie.
// Everything else lives in the Store.
type Manager struct {
	cookies *sessions.CookieStore
	store   Store
}

func NewManager(secret []byte, store Store, maxAge time.Duration) *Manager {
	cs := sessions.NewCookieStore(secret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{cookies: cs, store: store}
}

// Load returns the visitor's session, issuing a new id when the cookie is
// missing or fails verification.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*Session, error) {
	// a tampered cookie yields a fresh session together with an error; start over in that case
	cs, _ := m.cookies.Get(r, cookieName)
	sid, _ := cs.Values[valueSID].(string)
	if sid == "" {
		sid = uuid.NewString()
		cs.Values[valueSID] = sid
		if err := cs.Save(r, w); err != nil {
			return nil, err
		}
	}
	return New(sid, m.store), nil
}

// Renew moves the visitor's state to a fresh session id and reissues the cookie.
// Call it whenever the visitor's privileges change.
func (m *Manager) Renew(w http.ResponseWriter, r *http.Request, old *Session) (*Session, error) {
	sid := uuid.NewString()
	if err := m.store.Move(r.Context(), old.ID, sid); err != nil {
		return nil, err
	}
	cs, _ := m.cookies.Get(r, cookieName)
	cs.Values[valueSID] = sid
	if err := cs.Save(r, w); err != nil {
		return nil, err
	}
	return New(sid, m.store), nil
}

func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Load(w, r)
		if err != nil {
			log.Printf("session load: %v", err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
	})
}
