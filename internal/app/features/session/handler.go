// internal/app/features/session/handler.go
package session

import (
	"net/http"

	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/dalemusser/readalong/internal/app/system/identity"
	"github.com/dalemusser/readalong/internal/app/system/session"
	"go.uber.org/zap"
)

// Handler exposes the browser session and the identity handshake state.
type Handler struct {
	Sessions  *session.Manager
	Handshake *identity.Handshake
	Dev       bool
	Log       *zap.Logger
}

// NewHandler creates a session handler.
func NewHandler(sm *session.Manager, hs *identity.Handshake, dev bool, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sm, Handshake: hs, Dev: dev, Log: logger}
}

type sessionResponse struct {
	Nickname  string `json:"nickname"`
	ArticleID string `json:"articleId"`
	AuthReady bool   `json:"authReady"`
	UID       string `json:"uid"`
	ClientID  string `json:"clientId"`
}

func (h *Handler) respond(w http.ResponseWriter, st session.State) {
	apierr.WriteJSON(w, http.StatusOK, sessionResponse{
		Nickname:  st.Nickname,
		ArticleID: st.ArticleID,
		AuthReady: h.Handshake.Ready(),
		UID:       h.Handshake.UID(),
		ClientID:  st.ClientID,
	})
}

// ServeGet handles GET /api/session.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	st, err := h.Sessions.Get(w, r)
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	h.respond(w, st)
}

// ServeUpdate handles PUT /api/session. Only fields present in the body
// change.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	var u session.Update
	if err := apierr.DecodeJSON(r, &u); err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	st, err := h.Sessions.Apply(w, r, u)
	if err != nil {
		apierr.Write(w, err, h.Dev, h.Log)
		return
	}
	h.respond(w, st)
}
