package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-lister/internal/metrics"
)

func testEvent(kind EventKind) Event {
	return Event{
		Kind:        kind,
		SKU:         "CARD-42-1717243200000",
		Title:       "1999 Pokemon Base Set Charizard Holo",
		Price:       "249.99 USD",
		Environment: "production",
		Account:     "cardshop",
		ListingURL:  "https://www.ebay.com/itm/110551234567",
		ImageURL:    "https://i.ebayimg.com/images/g/test/s-l1600.jpg",
		At:          time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDiscordNotifier_Send(t *testing.T) {
	t.Parallel()

	failed := testEvent(EventPublishFailed)
	failed.Stage = "create_offer"
	failed.Error = "[25002] The fulfillment policy is invalid."
	failed.ListingURL = ""

	tests := []struct {
		name       string
		event      Event
		statusCode int
		wantErr    bool
		errMsg     string
		wantColor  int
		wantTitle  string
	}{
		{
			name:       "listed event is green",
			event:      testEvent(EventListed),
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
			wantTitle:  "Listed: 1999 Pokemon Base Set Charizard Holo",
		},
		{
			name:       "failed event is red and carries the error",
			event:      failed,
			statusCode: http.StatusNoContent,
			wantColor:  colorRed,
			wantTitle:  "Publish failed: 1999 Pokemon Base Set Charizard Holo",
		},
		{
			name:       "persist pending is yellow",
			event:      testEvent(EventPersistPending),
			statusCode: http.StatusNoContent,
			wantColor:  colorYellow,
			wantTitle:  "Listed, save pending: 1999 Pokemon Base Set Charizard Holo",
		},
		{
			name:       "discord returns 429 rate limited",
			event:      testEvent(EventListed),
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errMsg:     "rate limited",
		},
		{
			name:       "discord returns 400 error",
			event:      testEvent(EventListed),
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errMsg:     "discord returned 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)
					assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			d := NewDiscordNotifier(srv.URL)
			err := d.Send(context.Background(), &tt.event)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Equal(t, tt.wantTitle, embed.Title)
			assert.Equal(t, tt.event.ListingURL, embed.URL)
			assert.Equal(t, tt.event.Error, embed.Description)
			assert.Equal(t, "2025-06-01T12:00:00Z", embed.Timestamp)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, tt.event.SKU, fieldMap["SKU"])
			assert.Equal(t, tt.event.Price, fieldMap["Price"])
			assert.Equal(t, tt.event.Stage, fieldMap["Stage"])
		})
	}
}

func TestDiscordNotifier_Send_NoImage(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	e := testEvent(EventListed)
	e.ImageURL = ""

	require.NoError(t, NewDiscordNotifier(srv.URL).Send(context.Background(), &e))
	require.Len(t, received.Embeds, 1)
	assert.Nil(t, received.Embeds[0].Thumbnail)
}

func TestDiscordNotifier_SendBatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		count      int
		wantPost   bool
		wantEmbeds int
	}{
		{name: "empty batch sends nothing", count: 0},
		{name: "small batch", count: 3, wantPost: true, wantEmbeds: 3},
		{name: "large batch is capped with an overflow embed", count: 14, wantPost: true, wantEmbeds: maxEmbeds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			posted := false
			var received discordWebhookPayload
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				posted = true
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
				w.WriteHeader(http.StatusNoContent)
			}))
			defer srv.Close()

			events := make([]Event, tt.count)
			for i := range events {
				events[i] = testEvent(EventSyncFailed)
			}

			err := NewDiscordNotifier(srv.URL).SendBatch(context.Background(), events, "2 accounts failed to sync")
			require.NoError(t, err)
			assert.Equal(t, tt.wantPost, posted)
			if !tt.wantPost {
				return
			}
			assert.Equal(t, "2 accounts failed to sync", received.Content)
			assert.Len(t, received.Embeds, tt.wantEmbeds)
			if tt.count > maxEmbeds {
				assert.Equal(t, "... and 5 more", received.Embeds[maxEmbeds-1].Title)
			}
		})
	}
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	e := testEvent(EventListed)
	err := d.Send(context.Background(), &e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	e := testEvent(EventListed)
	err := d.Send(context.Background(), &e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSend_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	e := testEvent(EventListed)
	require.NoError(t, NewDiscordNotifier(srv.URL).Send(context.Background(), &e))

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}
