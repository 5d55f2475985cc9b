package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/readalong/internal/app/system/session"
	"github.com/dalemusser/readalong/internal/domain/models"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager("test-session-key-must-be-32-chars-long", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

// withCookies copies the Set-Cookie headers of rec onto a new request.
func withCookies(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest("GET", "/api/session", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func strPtr(s string) *string { return &s }

func TestGet_Defaults(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	st, err := m.Get(rec, httptest.NewRequest("GET", "/api/session", nil))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.ArticleID != models.DemoArticleID {
		t.Errorf("articleId: got %q, want %q", st.ArticleID, models.DemoArticleID)
	}
	if st.Nickname != "" {
		t.Errorf("nickname: got %q, want empty", st.Nickname)
	}
	if st.ClientID == "" {
		t.Error("expected a client id on first visit")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestGet_ClientIDStable(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	first, err := m.Get(rec, httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := m.Get(httptest.NewRecorder(), withCookies(rec))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if first.ClientID != second.ClientID {
		t.Errorf("client id changed: %q -> %q", first.ClientID, second.ClientID)
	}
}

func TestApply_Persists(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	st, err := m.Apply(rec, httptest.NewRequest("PUT", "/api/session", nil), session.Update{
		Nickname:  strPtr("민지"),
		ArticleID: strPtr("65f0c0ffee0000000000abcd"),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := m.Get(httptest.NewRecorder(), withCookies(rec))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(st, got); diff != "" {
		t.Errorf("state mismatch (-applied +read):\n%s", diff)
	}
	if got.Nickname != "민지" || got.ArticleID != "65f0c0ffee0000000000abcd" {
		t.Errorf("unexpected state: %+v", got)
	}
}

func TestApply_PartialAndReset(t *testing.T) {
	m := newTestManager(t)

	rec := httptest.NewRecorder()
	if _, err := m.Apply(rec, httptest.NewRequest("PUT", "/", nil), session.Update{
		Nickname:  strPtr("a"),
		ArticleID: strPtr("x"),
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	rec2 := httptest.NewRecorder()
	st, err := m.Apply(rec2, withCookies(rec), session.Update{ArticleID: strPtr("")})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if st.Nickname != "a" {
		t.Errorf("nickname should be unchanged, got %q", st.Nickname)
	}
	if st.ArticleID != models.DemoArticleID {
		t.Errorf("articleId should reset to default, got %q", st.ArticleID)
	}
}

func TestNewManager_EphemeralKey(t *testing.T) {
	m, err := session.NewManager("", "", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	rec := httptest.NewRecorder()
	if _, err := m.Get(rec, httptest.NewRequest("GET", "/", nil)); err != nil {
		t.Fatalf("Get: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.DefaultName {
		t.Errorf("cookies: %+v", cookies)
	}
}

func TestGet_TamperedCookie(t *testing.T) {
	m := newTestManager(t)
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "garbage"})

	st, err := m.Get(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if st.ClientID == "" || st.ArticleID != models.DemoArticleID {
		t.Errorf("expected fresh state, got %+v", st)
	}
}
