package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/donaldgifford/ebay-lister/internal/metrics"
)

const (
	colorGreen  = 0x2ECC71 // listed
	colorYellow = 0xF1C40F // needs attention
	colorRed    = 0xE74C3C // failed

	maxEmbeds = 10
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Thumbnail   *discordThumbnail   `json:"thumbnail,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordThumbnail struct {
	URL string `json:"url"`
}

// Send posts a single event as a Discord embed.
func (d *DiscordNotifier) Send(ctx context.Context, event *Event) error {
	return d.post(ctx, discordWebhookPayload{Embeds: []discordEmbed{buildEmbed(event)}})
}

// SendBatch posts several events as one message with summary as content.
func (d *DiscordNotifier) SendBatch(ctx context.Context, events []Event, summary string) error {
	if len(events) == 0 {
		return nil
	}

	limit := min(len(events), maxEmbeds)
	embeds := make([]discordEmbed, 0, limit+1)
	for i := range limit {
		embeds = append(embeds, buildEmbed(&events[i]))
	}
	if len(events) > maxEmbeds {
		embeds[maxEmbeds-1] = discordEmbed{
			Title: fmt.Sprintf("... and %d more", len(events)-maxEmbeds+1),
			Color: colorYellow,
		}
	}

	return d.post(ctx, discordWebhookPayload{Content: summary, Embeds: embeds})
}

func buildEmbed(e *Event) discordEmbed {
	embed := discordEmbed{
		Title: eventTitle(e),
		URL:   e.ListingURL,
		Color: eventColor(e.Kind),
	}

	add := func(name, value string) {
		if value != "" {
			embed.Fields = append(embed.Fields, discordEmbedField{Name: name, Value: value, Inline: true})
		}
	}
	add("SKU", e.SKU)
	add("Price", e.Price)
	add("Account", e.Account)
	add("Environment", e.Environment)
	add("Stage", e.Stage)

	if e.Error != "" {
		embed.Description = e.Error
	}
	if e.ImageURL != "" {
		embed.Thumbnail = &discordThumbnail{URL: e.ImageURL}
	}
	if !e.At.IsZero() {
		embed.Timestamp = e.At.UTC().Format(time.RFC3339)
	}

	return embed
}

func eventTitle(e *Event) string {
	switch e.Kind {
	case EventListed:
		return "Listed: " + e.Title
	case EventPublishFailed:
		return "Publish failed: " + e.Title
	case EventPersistPending:
		return "Listed, save pending: " + e.Title
	case EventReauthRequired:
		return "Re-authorization required: " + e.Account
	case EventSyncFailed:
		return "Sync failed: " + e.Account
	default:
		return string(e.Kind)
	}
}

func eventColor(k EventKind) int {
	switch k {
	case EventListed:
		return colorGreen
	case EventPersistPending, EventReauthRequired:
		return colorYellow
	default:
		return colorRed
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
