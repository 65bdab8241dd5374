package account_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-lister/internal/account"
	"github.com/donaldgifford/ebay-lister/internal/apperror"
	"github.com/donaldgifford/ebay-lister/internal/ebay"
	"github.com/donaldgifford/ebay-lister/internal/ebay/mocks"
	"github.com/donaldgifford/ebay-lister/internal/retry"
	"github.com/donaldgifford/ebay-lister/internal/store/storetest"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

var (
	testNow    = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fastPolicy = retry.Policy{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		Multiplier:      1,
	}
	errUnauthorized = fmt.Errorf("eBay API error (status 401): %w", apperror.ErrAuth)
)

func seedAccount(t *testing.T, s *storetest.Store, userID string, expiry time.Time) string {
	t.Helper()
	a := &domain.Account{
		AccountKey:   domain.AccountKey(userID, domain.EnvSandbox),
		UserID:       userID,
		Username:     userID + "-name",
		Environment:  domain.EnvSandbox,
		AccessToken:  "old-access",
		RefreshToken: "refresh-1",
		TokenExpiry:  expiry,
		ConnectedAt:  testNow.Add(-24 * time.Hour),
	}
	require.NoError(t, s.UpsertAccount(context.Background(), a))
	return a.AccountKey
}

func newTokens(s *storetest.Store, m *mocks.MockMarketplace) *account.Tokens {
	return account.NewTokens(s, m,
		account.WithNowFunc(func() time.Time { return testNow }),
		account.WithRetryPolicy(fastPolicy),
		account.WithCallTimeout(time.Second),
	)
}

func newTokenSet(access string) *domain.TokenSet {
	return &domain.TokenSet{
		AccessToken:  access,
		RefreshToken: "refresh-1",
		Expiry:       testNow.Add(2 * time.Hour),
	}
}

func TestTokens_ValidToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		expiry      time.Time
		setupMock   func(m *mocks.MockMarketplace)
		wantToken   string
		wantUpdates int
	}{
		{
			name:      "fresh token is returned without refresh",
			expiry:    testNow.Add(time.Hour),
			wantToken: "old-access",
		},
		{
			name:   "token inside safety margin is refreshed",
			expiry: testNow.Add(4 * time.Minute),
			setupMock: func(m *mocks.MockMarketplace) {
				m.EXPECT().
					RefreshToken(mock.Anything, domain.EnvSandbox, "refresh-1").
					Return(newTokenSet("new-access"), nil).
					Once()
			},
			wantToken:   "new-access",
			wantUpdates: 1,
		},
		{
			name:   "expired token is refreshed",
			expiry: testNow.Add(-time.Hour),
			setupMock: func(m *mocks.MockMarketplace) {
				m.EXPECT().
					RefreshToken(mock.Anything, domain.EnvSandbox, "refresh-1").
					Return(newTokenSet("new-access"), nil).
					Once()
			},
			wantToken:   "new-access",
			wantUpdates: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := storetest.New()
			key := seedAccount(t, s, "seller", tt.expiry)
			m := mocks.NewMockMarketplace(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			acct, err := newTokens(s, m).ValidToken(context.Background(), key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, acct.AccessToken)
			assert.Equal(t, tt.wantUpdates, s.TokenUpdates)

			stored, err := s.GetAccount(context.Background(), key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, stored.AccessToken)
		})
	}
}

func TestTokens_ConcurrentRefreshIsCollapsed(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	key := seedAccount(t, s, "seller", testNow.Add(-time.Minute))

	var exchanges atomic.Int32
	release := make(chan struct{})
	m := mocks.NewMockMarketplace(t)
	m.EXPECT().
		RefreshToken(mock.Anything, domain.EnvSandbox, "refresh-1").
		RunAndReturn(func(context.Context, domain.Environment, string) (*domain.TokenSet, error) {
			exchanges.Add(1)
			<-release
			return newTokenSet("new-access"), nil
		}).
		Once()

	tokens := newTokens(s, m)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acct, err := tokens.ValidToken(context.Background(), key)
			errs[i] = err
			if acct != nil {
				results[i] = acct.AccessToken
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, "new-access", results[i])
	}
	assert.Equal(t, int32(1), exchanges.Load())
	assert.Equal(t, 1, s.TokenUpdates)
}

func TestTokens_RejectedRefreshMarksAccount(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	key := seedAccount(t, s, "seller", testNow.Add(-time.Minute))

	m := mocks.NewMockMarketplace(t)
	m.EXPECT().
		RefreshToken(mock.Anything, domain.EnvSandbox, "refresh-1").
		Return(nil, fmt.Errorf("refreshing token: %w", apperror.ErrAuth)).
		Once()

	tokens := newTokens(s, m)

	_, err := tokens.ValidToken(context.Background(), key)
	require.Error(t, err)

	var authErr *apperror.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, key, authErr.AccountKey)

	stored, err := s.GetAccount(context.Background(), key)
	require.NoError(t, err, "account must not be deleted")
	assert.True(t, stored.NeedsReauth)
	assert.NotEmpty(t, stored.ReauthReason)

	// Further use fails fast without another exchange.
	_, err = tokens.ValidToken(context.Background(), key)
	assert.ErrorIs(t, err, apperror.ErrAuth)
}

func TestTokens_RefreshRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	key := seedAccount(t, s, "seller", testNow.Add(-time.Minute))

	m := mocks.NewMockMarketplace(t)
	m.EXPECT().
		RefreshToken(mock.Anything, domain.EnvSandbox, "refresh-1").
		Return(nil, apperror.Transient(errors.New("connection reset"))).
		Twice()
	m.EXPECT().
		RefreshToken(mock.Anything, domain.EnvSandbox, "refresh-1").
		Return(newTokenSet("new-access"), nil).
		Once()

	acct, err := newTokens(s, m).Refresh(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "new-access", acct.AccessToken)
}

func TestTokens_RefreshUnknownAccount(t *testing.T) {
	t.Parallel()

	_, err := newTokens(storetest.New(), mocks.NewMockMarketplace(t)).Refresh(context.Background(), "nobody:sandbox")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestTokens_Call(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		results     []error
		refresh     bool
		wantCalls   int
		wantTokens  []string
		wantErrIs   error
		wantAuthErr bool
	}{
		{
			name:       "success on first try",
			results:    []error{nil},
			wantCalls:  1,
			wantTokens: []string{"old-access"},
		},
		{
			name:       "transient failure is retried",
			results:    []error{apperror.Transient(errors.New("503")), nil},
			wantCalls:  2,
			wantTokens: []string{"old-access", "old-access"},
		},
		{
			name:       "validation failure is not retried",
			results:    []error{fmt.Errorf("bad category: %w", apperror.ErrValidation)},
			wantCalls:  1,
			wantTokens: []string{"old-access"},
			wantErrIs:  apperror.ErrValidation,
		},
		{
			name:       "401 refreshes once and retries",
			results:    []error{errUnauthorized, nil},
			refresh:    true,
			wantCalls:  2,
			wantTokens: []string{"old-access", "new-access"},
		},
		{
			name:        "second 401 is an auth error",
			results:     []error{errUnauthorized, errUnauthorized},
			refresh:     true,
			wantCalls:   2,
			wantTokens:  []string{"old-access", "new-access"},
			wantErrIs:   apperror.ErrAuth,
			wantAuthErr: true,
		},
		{
			name: "transient retries are bounded",
			results: []error{
				apperror.Transient(errors.New("503")),
				apperror.Transient(errors.New("503")),
				apperror.Transient(errors.New("503")),
			},
			wantCalls:  3,
			wantTokens: []string{"old-access", "old-access", "old-access"},
			wantErrIs:  apperror.ErrTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := storetest.New()
			key := seedAccount(t, s, "seller", testNow.Add(time.Hour))
			m := mocks.NewMockMarketplace(t)
			if tt.refresh {
				m.EXPECT().
					RefreshToken(mock.Anything, domain.EnvSandbox, "refresh-1").
					Return(newTokenSet("new-access"), nil).
					Once()
			}

			var tokensSeen []string
			calls := 0
			err := newTokens(s, m).Call(context.Background(), key, func(_ context.Context, auth ebay.Auth) error {
				assert.Equal(t, domain.EnvSandbox, auth.Environment)
				tokensSeen = append(tokensSeen, auth.Token)
				res := tt.results[calls]
				calls++
				return res
			})

			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantTokens, tokensSeen)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				var authErr *apperror.AuthError
				assert.Equal(t, tt.wantAuthErr, errors.As(err, &authErr))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTokens_CallReusesConcurrentRefresh(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	key := seedAccount(t, s, "seller", testNow.Add(time.Hour))
	m := mocks.NewMockMarketplace(t)

	tokens := newTokens(s, m)

	calls := 0
	err := tokens.Call(context.Background(), key, func(_ context.Context, auth ebay.Auth) error {
		calls++
		if calls == 1 {
			// Another caller refreshes while this request is in flight.
			require.NoError(t, s.UpdateAccountTokens(context.Background(), key, *newTokenSet("other-access")))
			return errUnauthorized
		}
		assert.Equal(t, "other-access", auth.Token)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTokens_CallIgnoresCancellationInFlight(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	key := seedAccount(t, s, "seller", testNow.Add(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	err := newTokens(s, mocks.NewMockMarketplace(t)).Call(ctx, key, func(callCtx context.Context, _ ebay.Auth) error {
		cancel()
		assert.NoError(t, callCtx.Err())
		_, hasDeadline := callCtx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})
	require.NoError(t, err)
}
