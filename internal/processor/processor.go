package processor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"photoMarketplace/internal/imgcodec"
	"photoMarketplace/internal/lib/logger/sl"
	"photoMarketplace/internal/models"
	"photoMarketplace/internal/storage/files"
	"photoMarketplace/internal/watermark"
)

const watermarkedDir = "photos/watermarked"

type PhotoStore interface {
	GetPhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error)
	SetWatermarkedPath(ctx context.Context, id uuid.UUID, key string) (string, error)
}

// Processor derives the watermarked rendition of an uploaded photo. Each
// record is processed at most once: a presence check short-circuits repeat
// calls, a per-record mutex serializes concurrent callers in this process,
// and the store's conditional write settles races across processes.
type Processor struct {
	log         *slog.Logger
	photos      PhotoStore
	files       files.Store
	renderer    *watermark.Renderer
	quality     int
	readTimeout time.Duration
	locks       sync.Map
}

func New(
	log *slog.Logger,
	photos PhotoStore,
	fileStore files.Store,
	renderer *watermark.Renderer,
	quality int,
	readTimeout time.Duration,
) *Processor {
	return &Processor{
		log:         log,
		photos:      photos,
		files:       fileStore,
		renderer:    renderer,
		quality:     quality,
		readTimeout: readTimeout,
	}
}

// Process returns the record with the derivative reference populated. Decode,
// draw and encode failures are logged and swallowed: the record stays usable
// without a derivative and no partial derivative is ever stored. Storage and
// database errors propagate.
func (p *Processor) Process(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	const op = "processor.Process"

	log := p.log.With(
		slog.String("op", op),
		slog.String("photo_id", photo.ID.String()),
	)

	if !photo.HasOriginal() {
		return photo, nil
	}
	if photo.HasDerivative() {
		return photo, nil
	}

	mu := p.lockFor(photo.ID)
	mu.Lock()
	defer mu.Unlock()

	// Re-read under the lock: another caller may have finished while we waited.
	fresh, err := p.photos.GetPhoto(ctx, photo.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if fresh.HasDerivative() {
		return fresh, nil
	}

	data, err := p.readOriginal(ctx, fresh.OriginalPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	encoded, ok := p.derive(log, data)
	if !ok {
		return fresh, nil
	}

	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := p.files.Save(ctx, derivedKey(fresh.OriginalPath), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	winner, err := p.photos.SetWatermarkedPath(ctx, fresh.ID, stored.Key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if winner != stored.Key {
		log.Warn("lost derivative write race, adopting existing reference",
			slog.String("stored_key", stored.Key),
			slog.String("winner_key", winner),
		)
	}

	result := *fresh
	result.WatermarkedPath.String = winner
	result.WatermarkedPath.Valid = true

	log.Info("derivative produced", slog.String("watermarked_path", winner))

	return &result, nil
}

// derive runs the in-memory pipeline: decode, flatten to opaque color,
// watermark, JPEG encode. A false return means a soft failure that was
// already logged.
func (p *Processor) derive(log *slog.Logger, data []byte) ([]byte, bool) {
	img, err := imgcodec.Decode(data)
	if err != nil {
		log.Warn("failed to decode original, skipping derivative", sl.Err(err))
		return nil, false
	}

	flat := imgcodec.Flatten(img)
	flat = p.renderer.Place(flat, watermark.Label)

	encoded, err := imgcodec.Encode(flat, p.quality)
	if err != nil {
		log.Warn("failed to encode derivative, skipping", sl.Err(err))
		return nil, false
	}

	return encoded, true
}

func (p *Processor) readOriginal(ctx context.Context, key string) ([]byte, error) {
	if p.readTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.readTimeout)
		defer cancel()
	}

	rc, err := p.files.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func (p *Processor) lockFor(id uuid.UUID) *sync.Mutex {
	v, _ := p.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func derivedKey(originalPath string) string {
	base := filepath.Base(originalPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return path.Join(watermarkedDir, name+"_watermarked.jpg")
}
