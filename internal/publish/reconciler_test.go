package publish_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-lister/internal/publish"
	"github.com/donaldgifford/ebay-lister/internal/store/storetest"
	domain "github.com/donaldgifford/ebay-lister/pkg/types"
)

func seedListing(t *testing.T, s *storetest.Store, sku string) domain.Listing {
	t.Helper()
	l := domain.Listing{
		SKU:         sku,
		CardID:      "card-1",
		Status:      domain.StatusOfferCreated,
		Environment: domain.EnvSandbox,
		CreatedAt:   testNow,
		LastUpdated: testNow,
	}
	require.NoError(t, s.CreateListing(context.Background(), &l))
	return l
}

func TestReconciler_Run(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	r := publish.NewReconciler(s)

	a := seedListing(t, s, "SKU-A")
	b := seedListing(t, s, "SKU-B")
	itemID := "555"
	a.Status, a.RemoteItemID = domain.StatusListed, &itemID
	b.Status = domain.StatusListed

	s.UpdateListingErr = func(l *domain.Listing) error {
		if l.SKU == "SKU-B" {
			return errors.New("deadlock detected")
		}
		return nil
	}

	r.Enqueue(b)
	r.Enqueue(a)
	assert.Equal(t, []string{"SKU-A", "SKU-B"}, r.Pending())

	n, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"SKU-B"}, r.Pending(), "failed writes stay queued")

	got, err := s.GetListing(context.Background(), "SKU-A")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusListed, got.Status)
	assert.Equal(t, "555", *got.RemoteItemID)

	_, ok := r.Lookup("SKU-A")
	assert.False(t, ok)
	queued, ok := r.Lookup("SKU-B")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPersistPending, queued.Status)
}

func TestReconciler_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	s := storetest.New()
	r := publish.NewReconciler(s)
	r.Enqueue(seedListing(t, s, "SKU-A"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
	assert.Equal(t, []string{"SKU-A"}, r.Pending())
}

func TestReconciler_EnqueueReplaces(t *testing.T) {
	t.Parallel()

	r := publish.NewReconciler(storetest.New())
	l := domain.Listing{SKU: "SKU-A", ListingURL: "https://old"}
	r.Enqueue(l)
	l.ListingURL = "https://new"
	r.Enqueue(l)

	got, ok := r.Lookup("SKU-A")
	require.True(t, ok)
	assert.Equal(t, "https://new", got.ListingURL)
	assert.Len(t, r.Pending(), 1)
}
