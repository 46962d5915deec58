package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BroDamaris/Web-DesaPulosari/internal/auth"
	"github.com/BroDamaris/Web-DesaPulosari/internal/handler"
	"github.com/BroDamaris/Web-DesaPulosari/internal/repository/sqlite"
	"github.com/BroDamaris/Web-DesaPulosari/internal/service"
)

// The handler tests run the full stack below the HTTP layer: real services,
// a real in-memory SQLite database, and a recording fake in place of
// Dropbox. Requests go in through httptest, assertions read the envelope.

// stubStore records image-store calls and answers with predictable URLs.
type stubStore struct {
	calls []string
}

func (s *stubStore) Upload(ctx context.Context, filename string, contents io.Reader) (string, error) {
	s.calls = append(s.calls, "upload "+filename)
	return "/" + filename, nil
}

func (s *stubStore) SharedLink(ctx context.Context, path string) (string, error) {
	s.calls = append(s.calls, "link "+path)
	return "https://dl.dropboxusercontent.com/s/fake" + path, nil
}

func (s *stubStore) Delete(ctx context.Context, fileURL string) {
	s.calls = append(s.calls, "delete "+fileURL)
}

// testEnv bundles everything a handler test needs.
type testEnv struct {
	users    *handler.UserHandler
	auth     *handler.AuthHandler
	berita   *handler.BeritaHandler
	galeri   *handler.GaleriHandler
	sessions *auth.Sessions
	gate     func(http.Handler) http.Handler
	store    *stubStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New(:memory:) error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	passwords := auth.NewPasswordServiceWithCost(4)
	sessions, err := auth.NewSessions("test-secret-at-least-16-chars", auth.DefaultSessionTTL)
	if err != nil {
		t.Fatalf("NewSessions() error = %v", err)
	}
	store := &stubStore{}

	authSvc := service.NewAuthService(db.Users(), passwords, logger)
	userSvc := service.NewUserService(db.Users(), passwords, logger)
	beritaSvc := service.NewBeritaService(db.Berita(), store, logger)
	galeriSvc := service.NewGaleriService(db.Galeri(), store, logger)

	return &testEnv{
		users:    handler.NewUserHandler(userSvc, logger),
		auth:     handler.NewAuthHandler(authSvc, sessions, logger),
		berita:   handler.NewBeritaHandler(beritaSvc, logger),
		galeri:   handler.NewGaleriHandler(galeriSvc, logger),
		sessions: sessions,
		gate:     auth.RequireUser(sessions, db.Users()),
		store:    store,
	}
}

// signup registers an account straight through the handler and returns
// nothing — the response carries no data by design.
func (e *testEnv) signup(t *testing.T, nama, username, password string) {
	t.Helper()

	rr := httptest.NewRecorder()
	e.users.HandleCreate(rr, jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
		"nama":         nama,
		"username":     username,
		"password":     password,
		"confPassword": password,
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body = %s", rr.Code, rr.Body.String())
	}
}

// login performs a login and returns the session cookie it set.
func (e *testEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	rr := httptest.NewRecorder()
	e.auth.HandleLogin(rr, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}))
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rr.Code, rr.Body.String())
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("login set %d cookies, want 1", len(cookies))
	}
	return cookies[0]
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a multipart form with the given text fields and
// (when filename is non-empty) a gambar file part.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, filename string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("writing form field %q: %v", key, err)
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile("gambar", filename)
		if err != nil {
			t.Fatalf("creating file part: %v", err)
		}
		if _, err := part.Write([]byte("jpegbytes")); err != nil {
			t.Fatalf("writing file part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// envelope decodes the standard response shape with data left raw.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decoding response envelope: %v (body: %s)", err, rr.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env envelope, into any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, into); err != nil {
		t.Fatalf("decoding envelope data: %v (data: %s)", err, env.Data)
	}
}
