package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/movierental/backend/internal/config"
	"github.com/movierental/backend/internal/middleware"
	"github.com/movierental/backend/internal/utils"
	"github.com/movierental/backend/internal/validator"
)

const testSecret = "test-secret"

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    testSecret,
		AccessTTLMin: 60,
		BcryptCost:   4, // minimum cost keeps the tests fast
		UploadDir:    "",
	}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	return e
}

// bearerFor mints a real access token so protected handlers run through
// the actual JWT middleware in tests.
func bearerFor(t *testing.T, userID uint64, username, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, userID, username, role, 60)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + tok.Token
}

// protect wraps a handler in the JWT middleware, mirroring how the
// router registers it.
func protect(h echo.HandlerFunc) echo.HandlerFunc {
	return middleware.JWTAuth(testSecret)(h)
}

func jsonRequest(t *testing.T, e *echo.Echo, method, target, bearer string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, bearer)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// runHandler invokes a handler and fails the test on an unexpected
// error return. echo.HTTPError returns (from c.Validate) are rendered
// into the recorder the way echo's error handler would.
func runHandler(t *testing.T, h echo.HandlerFunc, c echo.Context, rec *httptest.ResponseRecorder) {
	t.Helper()
	if err := h(c); err != nil {
		he, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("handler returned unexpected error: %v", err)
		}
		rec.Code = he.Code
		msg, _ := json.Marshal(map[string]any{"message": he.Message})
		rec.Body.Reset()
		rec.Body.Write(msg)
	}
}
