// Package session keeps the per-browser nickname and activity code in a
// signed cookie.
package session

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/readalong/internal/domain/models"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	DefaultName = "readalong-session"

	clientIDKey  = "client_id"
	nicknameKey  = "nickname"
	articleIDKey = "article_id"
)

// State is what the browser session carries.
type State struct {
	ClientID  string `json:"clientId"`
	Nickname  string `json:"nickname"`
	ArticleID string `json:"articleId"`
}

// Update holds optional new values; nil fields are left unchanged.
type Update struct {
	Nickname  *string `json:"nickname,omitempty"`
	ArticleID *string `json:"articleId,omitempty"`
}

// Manager reads and writes State through a gorilla cookie store.
type Manager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewManager builds a Manager. An empty key generates a random one, which
// means sessions do not survive a restart. With secure set, cookies are
// Secure and SameSite=None; otherwise SameSite=Lax for local http.
func NewManager(key, name, domain string, secure bool, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if name == "" {
		name = DefaultName
	}

	var keyBytes []byte
	switch {
	case key == "":
		keyBytes = securecookie.GenerateRandomKey(32)
		if keyBytes == nil {
			return nil, fmt.Errorf("generate session key: no randomness available")
		}
		logger.Warn("session key not set; using an ephemeral random key")
	default:
		if len(key) < 32 {
			logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
		}
		keyBytes = []byte(key)
	}

	store := sessions.NewCookieStore(keyBytes)
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   86400 * 30,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	return &Manager{store: store, name: name, log: logger}, nil
}

func (m *Manager) session(r *http.Request) *sessions.Session {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// Undecodable cookie (rotated key, tampering); start fresh.
		m.log.Debug("session: discarding unreadable cookie", zap.Error(err))
	}
	return sess
}

func stateOf(sess *sessions.Session) State {
	s := State{
		ClientID:  str(sess, clientIDKey),
		Nickname:  str(sess, nicknameKey),
		ArticleID: str(sess, articleIDKey),
	}
	if s.ArticleID == "" {
		s.ArticleID = models.DemoArticleID
	}
	return s
}

func str(sess *sessions.Session, k string) string {
	v, _ := sess.Values[k].(string)
	return v
}

// Get returns the current State, issuing a client id (and the cookie) on
// the first visit.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) (State, error) {
	sess := m.session(r)
	if str(sess, clientIDKey) == "" {
		sess.Values[clientIDKey] = uuid.NewString()
		if err := sess.Save(r, w); err != nil {
			return State{}, fmt.Errorf("save session: %w", err)
		}
	}
	return stateOf(sess), nil
}

// Apply stores the non-nil fields of u and returns the resulting State.
// An empty ArticleID resets the activity code to the default.
func (m *Manager) Apply(w http.ResponseWriter, r *http.Request, u Update) (State, error) {
	sess := m.session(r)
	if str(sess, clientIDKey) == "" {
		sess.Values[clientIDKey] = uuid.NewString()
	}
	if u.Nickname != nil {
		sess.Values[nicknameKey] = *u.Nickname
	}
	if u.ArticleID != nil {
		if *u.ArticleID == "" {
			delete(sess.Values, articleIDKey)
		} else {
			sess.Values[articleIDKey] = *u.ArticleID
		}
	}
	if err := sess.Save(r, w); err != nil {
		return State{}, fmt.Errorf("save session: %w", err)
	}
	return stateOf(sess), nil
}
