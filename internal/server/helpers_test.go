package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"postpilot/internal/config"
	"postpilot/internal/database"
	"postpilot/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	return &config.Config{
		JWTSecret:      "test-secret",
		Port:           "0",
		Env:            "test",
		UploadDir:      t.TempDir(),
		PublicBaseURL:  "http://localhost:8340",
		IdentityAPIURL: "http://localhost:0",
		TextGenAPIURL:  "http://localhost:0",
		TextGenAPIKey:  "test-key",
	}
}

// setupTestServer builds a server on an in-memory database and returns the
// Fiber app routes are mounted on.
func setupTestServer(t *testing.T, cfg *config.Config) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	server := NewServerWithDeps(cfg, db, nil)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	server.SetupRoutes(app)
	return server, app
}

// seedUser creates a user with its schedule and returns the user and a valid
// bearer token.
func seedUser(t *testing.T, s *Server, orgID int64) (*models.User, string) {
	t.Helper()

	user := &models.User{OrgID: orgID, Data: models.JSONMap{
		"user": map[string]any{"name": "Maria", "email": "ong@example.org"},
		"ngo":  map[string]any{"id": float64(orgID), "name": "Helping Hands"},
	}}
	require.NoError(t, s.userRepo.CreateWithSchedule(context.Background(), user))

	token, err := s.generateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

type multipartBody struct {
	buf *bytes.Buffer
	w   *multipart.Writer
}

func newMultipartBody() *multipartBody {
	buf := &bytes.Buffer{}
	return &multipartBody{buf: buf, w: multipart.NewWriter(buf)}
}

func (m *multipartBody) field(name, value string) *multipartBody {
	_ = m.w.WriteField(name, value)
	return m
}

func (m *multipartBody) file(t *testing.T, field, filename, contentType string, content []byte) *multipartBody {
	t.Helper()
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := m.w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	return m
}

func (m *multipartBody) request(t *testing.T, method, target, token string) *http.Request {
	t.Helper()
	require.NoError(t, m.w.Close())
	req := newRequest(t, method, target, m.buf, token)
	req.Header.Set("Content-Type", m.w.FormDataContentType())
	return req
}

func newRequest(t *testing.T, method, target string, body io.Reader, token string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func jsonRequest(t *testing.T, method, target string, payload any, token string) *http.Request {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req := newRequest(t, method, target, bytes.NewReader(b), token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
