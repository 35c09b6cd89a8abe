package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/biblion/internal/kv"
	"github.com/Skotchmaster/biblion/internal/models"
	"github.com/Skotchmaster/biblion/internal/reader"
	"github.com/Skotchmaster/biblion/internal/repo"
	"github.com/Skotchmaster/biblion/internal/repo/repotest"
	"github.com/Skotchmaster/biblion/internal/service"
	middleware "github.com/Skotchmaster/biblion/pkg/middleware/auth"
	"github.com/Skotchmaster/biblion/pkg/tokens"
)

var (
	testJWTSecret     = []byte("test-jwt-secret")
	testRefreshSecret = []byte("test-refresh-secret")
)

type harness struct {
	e    *echo.Echo
	repo *repo.GormRepo
	deps *Deps
	auth *service.AuthService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	r := repotest.New(t)

	samples := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(samples, reader.SampleEPUB), []byte("epub-sample"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(samples, reader.SamplePDF), []byte("pdf-sample"), 0o644))

	authSvc := &service.AuthService{
		Repo: r, JWTSecret: testJWTSecret, RefreshSecret: testRefreshSecret,
		AccessTTL: 15 * time.Minute, RefreshTTL: 24 * time.Hour,
	}
	history := &service.SearchHistoryService{Store: kv.NewMemoryRecent()}

	deps := &Deps{
		Books: &BookHTTP{
			Svc:    &service.CatalogService{Repo: r},
			Reader: &service.ReaderService{Repo: r, Opener: reader.NewOpener(samples, time.Second)},
		},
		Auth:     &AuthHTTP{Svc: authSvc},
		Cart:     &CartHTTP{Svc: &service.CartService{Repo: r}},
		Wishlist: &WishlistHTTP{Svc: &service.WishlistService{Repo: r}},
		Checkout: &CheckoutHTTP{
			Svc:    &service.CheckoutService{Repo: r, Idempotency: kv.NewMemoryIdempotency()},
			Orders: &service.OrderService{Repo: r},
		},
		Session: &SessionHTTP{
			Recent: history,
			Import: &service.ImportService{Repo: r, Recent: history},
		},
		AuthMW:     middleware.NewAutoRefreshMiddleware(testJWTSecret, authSvc, false),
		Ready:      r.Ping,
		SamplesDir: samples,
	}

	e := echo.New()
	Register(e, deps)
	return &harness{e: e, repo: r, deps: deps, auth: authSvc}
}

// register creates a user through the service and returns a bearer token.
func (h *harness) register(t *testing.T, email string) (string, *models.User) {
	t.Helper()
	res, err := h.auth.Register(context.Background(), "Reader", email, "secret1")
	require.NoError(t, err)
	return res.Pair.AccessToken, res.User
}

func (h *harness) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func accessToken(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := tokens.NewAccessToken(testJWTSecret, userID, role, time.Now().Add(time.Minute))
	require.NoError(t, err)
	return tok
}
