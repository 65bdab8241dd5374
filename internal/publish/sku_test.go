package publish

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/ebay-lister/internal/apperror"
)

func TestNewSKU(t *testing.T) {
	t.Parallel()

	at := time.UnixMilli(1748779200123)

	tests := []struct {
		name   string
		cardID string
		seq    int
		want   string
	}{
		{name: "plain card id", cardID: "card-42", want: "card-42-1748779200123"},
		{name: "unsafe characters replaced", cardID: "Pikachu #25/102", want: "Pikachu-25-102-1748779200123"},
		{name: "empty prefix falls back", cardID: "###", want: "ITEM-1748779200123"},
		{name: "sequence suffix", cardID: "card-42", seq: 3, want: "card-42-1748779200123-3"},
		{
			name:   "long card id cut",
			cardID: strings.Repeat("a", 40),
			want:   strings.Repeat("a", 30) + "-1748779200123",
		},
		{
			name:   "large suffix shrinks prefix",
			cardID: strings.Repeat("a", 40),
			seq:    123456,
			want:   strings.Repeat("a", 29) + "-1748779200123-123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := newSKU(tt.cardID, at, tt.seq)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, validateSKU(got))
		})
	}
}

func TestValidateSKU(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sku     string
		wantErr bool
	}{
		{name: "valid", sku: "CARD_1-abc"},
		{name: "space", sku: "CARD 1", wantErr: true},
		{name: "slash", sku: "a/b", wantErr: true},
		{name: "too long", sku: strings.Repeat("x", 51), wantErr: true},
		{name: "at limit", sku: strings.Repeat("x", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateSKU(tt.sku)
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperror.ErrValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTruncateTitle(t *testing.T) {
	t.Parallel()

	short := "Charizard Base Set Holo"
	got, cut := truncateTitle(short)
	assert.Equal(t, short, got)
	assert.False(t, cut)

	long := strings.Repeat("é", 100)
	got, cut = truncateTitle(long)
	assert.True(t, cut)
	assert.Equal(t, 80, len([]rune(got)))

	got, cut = truncateTitle(strings.Repeat("Holo ", 30))
	assert.True(t, cut)
	assert.Len(t, []rune(got), 79, "space left at the cut is trimmed")
	assert.False(t, strings.HasSuffix(got, " "))
}
