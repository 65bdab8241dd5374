package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-lister/api/openapi"
	"github.com/donaldgifford/ebay-lister/internal/account"
	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/config"
	"github.com/donaldgifford/ebay-lister/internal/ebay/mocks"
	"github.com/donaldgifford/ebay-lister/internal/store/storetest"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

func TestEbayEnvironments(t *testing.T) {
	t.Parallel()

	cfg := &config.EbayConfig{
		Sandbox: config.EnvironmentConfig{
			AppID:    "sbx-app",
			CertID:   "sbx-cert",
			APIURL:   "https://api.sandbox.ebay.com",
			TokenURL: "https://api.sandbox.ebay.com/identity/v1/oauth2/token",
		},
	}

	envs := ebayEnvironments(cfg)
	require.Len(t, envs, 1)
	assert.Equal(t, "sbx-app", envs[domain.EnvSandbox].AppID)
	assert.Equal(t, "https://api.sandbox.ebay.com", envs[domain.EnvSandbox].APIURL)
	_, ok := envs[domain.EnvProduction]
	assert.False(t, ok)
}

func TestOpenAPIDocumentListsRoutes(t *testing.T) {
	t.Parallel()

	api := newAPI(echo.New())
	registerRoutes(api, nil, nil)

	var buf bytes.Buffer
	require.NoError(t, openapi.Write(&buf, api, "json"))

	for _, path := range []string{
		"/api/v1/accounts",
		"/api/v1/accounts/active",
		"/api/v1/accounts/connect",
		"/api/v1/accounts/callback",
		"/api/v1/accounts/{key}",
		"/api/v1/listings",
		"/api/v1/listings/{sku}",
		"/api/v1/sync",
		"/api/v1/sync/history",
		"/api/v1/sync/cooldown",
		"/api/v1/quota",
		"/api/v1/quota/remote",
	} {
		assert.Contains(t, buf.String(), `"`+path+`"`)
	}
}

func TestRemoteQuotaWithoutService(t *testing.T) {
	t.Parallel()

	e := echo.New()
	registerRoutes(newAPI(e), nil, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/quota/remote", http.NoBody))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestBuildService_LegacyImportFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ebay_tokens.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"expired"}`), 0o600))

	cfg := &config.Config{Ebay: config.EbayConfig{LegacyTokenFile: path, CallTimeout: time.Second}}
	st := storetest.New()
	client := mocks.NewMockMarketplace(t)
	client.EXPECT().GetUser(mock.Anything, mock.Anything).Return(nil, apperror.ErrAuth).Once()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	svc, err := buildService(context.Background(), cfg, st, client, log)
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Contains(t, buf.String(), "level=WARN")

	_, done, err := st.GetSetting(context.Background(), account.SettingLegacyImported)
	require.NoError(t, err)
	assert.True(t, done)

	accts, err := st.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accts)
}
