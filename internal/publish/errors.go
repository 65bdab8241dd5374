package publish

import (
	"errors"
	"fmt"

	"github.com/donaldgifford/ebay-lister/internal/ebay"
)

// Stage names one step of the publish pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageEnsureLocation      Stage = "ensure_location"
	StageUploadImages        Stage = "upload_images"
	StageCreateInventoryItem Stage = "create_inventory_item"
	StageCreateOffer         Stage = "create_offer"
	StagePublishOffer        Stage = "publish_offer"
	StagePersist             Stage = "persist"
)

// StageError reports the stage at which a publish attempt failed. Err keeps
// its category, so errors.Is works against the apperror sentinels.
type StageError struct {
	Stage Stage
	SKU   string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("publishing %s failed at %s: %v", e.SKU, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// remoteMessage returns the marketplace's own error text when err carries
// one, otherwise err's message.
func remoteMessage(err error) string {
	var apiErr *ebay.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
