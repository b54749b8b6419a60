package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-vidshare/internal/config"
	"github.com/MKhiriev/go-vidshare/internal/logger"
	"github.com/MKhiriev/go-vidshare/internal/mock"
	"github.com/MKhiriev/go-vidshare/internal/service"
	servicemock "github.com/MKhiriev/go-vidshare/internal/service/mock"
	"github.com/MKhiriev/go-vidshare/models"
)

// ─────────────────────────────────────────────
// Fixture
// ─────────────────────────────────────────────

const testToken = "valid.session.token"

type handlerFixture struct {
	tokens  *servicemock.MockTokenService
	auth    *servicemock.MockAuthService
	posts   *servicemock.MockPostService
	appInfo *servicemock.MockAppInfoService
	limiter *mock.MockAttemptLimiter

	handler *Handler
	router  http.Handler
}

func testConfig(t *testing.T) *config.StructuredConfig {
	t.Helper()
	return &config.StructuredConfig{
		Storage: config.Storage{
			Files: config.Files{
				UploadDir:     t.TempDir(),
				PublicPath:    "/uploads",
				MaxUploadSize: 1 << 20,
			},
		},
		Server: config.Server{
			RequestTimeout: 5 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &handlerFixture{
		tokens:  servicemock.NewMockTokenService(ctrl),
		auth:    servicemock.NewMockAuthService(ctrl),
		posts:   servicemock.NewMockPostService(ctrl),
		appInfo: servicemock.NewMockAppInfoService(ctrl),
		limiter: mock.NewMockAttemptLimiter(ctrl),
	}

	services := &service.Services{
		TokenService:   f.tokens,
		AuthService:    f.auth,
		PostService:    f.posts,
		AppInfoService: f.appInfo,
	}
	f.handler = NewHandler(services, f.limiter, testConfig(t), logger.Nop())
	f.router = f.handler.Init()
	return f
}

// allowAttempts lets every limited request through.
func (f *handlerFixture) allowAttempts() {
	f.limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(true, time.Duration(0), nil).AnyTimes()
}

// authenticate makes testToken resolve to user.
func (f *handlerFixture) authenticate(user models.User) {
	f.tokens.EXPECT().VerifySessionToken(testToken).Return(user.ID, nil).AnyTimes()
	f.auth.EXPECT().CurrentUser(gomock.Any(), user.ID).Return(user, nil).AnyTimes()
}

func (f *handlerFixture) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func bearer() []string {
	return []string{"Authorization", "Bearer " + testToken}
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[models.MessageResponse](t, rr).Message
}

var alice = models.User{ID: 7, Name: "Alice", Email: "alice@example.com", IsVerified: true}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	cfg := testConfig(t)
	log := logger.Nop()

	h := NewHandler(svc, nil, cfg, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, cfg, h.cfg)
	assert.Equal(t, log, h.logger)
	assert.Nil(t, h.limiter)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, nil, testConfig(t), logger.Nop())
	h2 := NewHandler(&service.Services{}, nil, testConfig(t), logger.Nop())

	assert.NotSame(t, h1, h2)
}
