package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"photoMarketplace/internal/lib/logger/sl"
)

// ReprocessMessage names a record whose derivation should run again, e.g.
// after a soft failure left it without a derivative.
type ReprocessMessage struct {
	PhotoID uuid.UUID `json:"photo_id"`
}

// HandleReprocess consumes a reprocess request from the queue and re-runs the
// pipeline for the named record. Already-derived records fall through the
// usual presence check and stay untouched.
func (p *Processor) HandleReprocess(ctx context.Context, message []byte) error {
	const op = "processor.HandleReprocess"

	var msg ReprocessMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		p.log.Error("failed to unmarshal reprocess message", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	photo, err := p.photos.GetPhoto(ctx, msg.PhotoID)
	if err != nil {
		p.log.Error("failed to load photo for reprocessing",
			slog.String("op", op),
			slog.String("photo_id", msg.PhotoID.String()),
			sl.Err(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err = p.Process(ctx, photo); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
