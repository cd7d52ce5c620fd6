package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/brightpath/site-backend/internal/content"
	"github.com/brightpath/site-backend/internal/notify"
	"github.com/brightpath/site-backend/internal/session"
	"github.com/brightpath/site-backend/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const adminPassword = "let-me-in"

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

type fakeMedia struct {
	keys []string
	body []byte
	err  error
}

func (f *fakeMedia) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.body, _ = io.ReadAll(r)
	return nil
}

func (f *fakeMedia) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://media.example.com/" + key, nil
}

type testServer struct {
	router   *gin.Engine
	backend  *content.MemoryBackend
	catalog  *content.Catalog
	notifier *recordingNotifier
	media    *fakeMedia
	cookies  []*http.Cookie
}

func newTestServer(t *testing.T, opts ...func(*Deps)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mem := content.NewMemoryBackend()
	cat := content.NewCatalog(mem, nil)
	secret, err := session.NewSecret(adminPassword, "")
	require.NoError(t, err)

	ts := &testServer{backend: mem, catalog: cat, notifier: &recordingNotifier{}, media: &fakeMedia{}}
	deps := Deps{
		Catalog:  cat,
		Gates:    session.NewGates(session.NewMemoryStorage(0), secret, 0),
		Cookie:   middleware.CookieOptions{Name: "site_session", Secret: []byte("handlers-test-secret-xxxxxxxxxxxxxx"), TTL: time.Hour},
		Notifier: ts.notifier,
		Media:    ts.media,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	ts.router = NewRouter(deps)
	return ts
}

// do sends a request carrying the cookies collected so far.
func (ts *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = bytes.NewBufferString(b)
		default:
			raw, _ := json.Marshal(b)
			rdr = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.send(req)
}

func (ts *testServer) send(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range ts.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		ts.cookies = set
	}
	return w
}

func (ts *testServer) login(t *testing.T) {
	t.Helper()
	w := ts.do(http.MethodPost, "/admin/login", gin.H{"password": adminPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
