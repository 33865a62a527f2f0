package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"inkwell/app/config"
	"inkwell/app/models"
)

// Minimal PNG header bytes, enough to pass content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func setupTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	cfg := config.Config{
		Env:                "development",
		UploadsDir:         t.TempDir(),
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		CorsAllowedOrigins: []string{"*"},
	}
	router, err := SetupRoutes(setupTestDB(t), cfg)
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// multipartBody builds a post submission form. A nil image omits the
// file part entirely.
func multipartBody(t *testing.T, fields map[string]string, imageName string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func doMultipart(t *testing.T, router *mux.Router, method, path, token string, fields map[string]string, imageName string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, imageName, image)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *mux.Router, name, email string, role models.Role) string {
	t.Helper()
	reg := map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "hunter22",
	}
	if role != "" {
		reg["role"] = string(role)
	}
	w := doJSON(t, router, "POST", "/api/users/register", "", reg)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, "POST", "/api/users/login", "", map[string]string{
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func submitPost(t *testing.T, router *mux.Router, token, title string) models.Post {
	t.Helper()
	w := doMultipart(t, router, "POST", "/api/blogs", token, map[string]string{
		"title":    title,
		"content":  "<p>" + title + "</p>",
		"category": "IT",
		"tags":     "go, testing",
	}, "valid.png", pngBytes)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		Blog models.Post `json:"blog"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Blog
}
