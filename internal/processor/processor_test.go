package processor_test

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"photoMarketplace/internal/imgcodec"
	"photoMarketplace/internal/models"
	"photoMarketplace/internal/processor"
	"photoMarketplace/internal/storage/files"
	"photoMarketplace/internal/watermark"
)

type fakePhotoStore struct {
	mu               sync.Mutex
	photos           map[uuid.UUID]*models.Photo
	derivativeWrites int
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{photos: make(map[uuid.UUID]*models.Photo)}
}

func (f *fakePhotoStore) add(p *models.Photo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.photos[p.ID] = &cp
}

func (f *fakePhotoStore) GetPhoto(_ context.Context, id uuid.UUID) (*models.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.photos[id]
	if !ok {
		return nil, fmt.Errorf("photo with ID %s not found: %w", id, sql.ErrNoRows)
	}

	cp := *p
	return &cp, nil
}

func (f *fakePhotoStore) SetWatermarkedPath(_ context.Context, id uuid.UUID, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.photos[id]
	if !ok {
		return "", fmt.Errorf("photo with ID %s not found: %w", id, sql.ErrNoRows)
	}
	if p.WatermarkedPath.Valid {
		return p.WatermarkedPath.String, nil
	}

	p.WatermarkedPath = sql.NullString{String: key, Valid: true}
	f.derivativeWrites++

	return key, nil
}

type testEnv struct {
	proc   *processor.Processor
	store  *files.Local
	photos *fakePhotoStore
	root   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := t.TempDir()

	store := files.NewLocal(root, "/media")
	photos := newFakePhotoStore()
	renderer := watermark.New(log, "")

	return &testEnv{
		proc:   processor.New(log, photos, store, renderer, 70, 5*time.Second),
		store:  store,
		photos: photos,
		root:   root,
	}
}

func (e *testEnv) saveOriginal(t *testing.T, key string, data []byte) *models.Photo {
	t.Helper()

	_, err := e.store.Save(context.Background(), key, bytes.NewReader(data))
	require.NoError(t, err)

	photo := &models.Photo{
		ID:           uuid.New(),
		UploaderID:   uuid.New(),
		Title:        "test",
		Description:  "test",
		OriginalPath: key,
		CreatedAt:    time.Now(),
	}
	e.photos.add(photo)

	return photo
}

func solidJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fill := color.NRGBA{R: 73, G: 109, B: 137, A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}

	data, err := imgcodec.Encode(img, 90)
	require.NoError(t, err)

	return data
}

func TestProcessProducesDerivative(t *testing.T) {
	env := newTestEnv(t)

	original := solidJPEG(t, 2000, 2000)
	photo := env.saveOriginal(t, "photos/originals/test_high_res.jpg", original)

	got, err := env.proc.Process(context.Background(), photo)
	require.NoError(t, err)

	require.True(t, got.HasDerivative())
	require.Equal(t, "photos/watermarked/test_high_res_watermarked.jpg", got.WatermarkedPath.String)

	rc, err := env.store.Open(context.Background(), got.WatermarkedPath.String)
	require.NoError(t, err)
	defer rc.Close()

	derived, err := io.ReadAll(rc)
	require.NoError(t, err)

	img, err := imgcodec.Decode(derived)
	require.NoError(t, err)

	// No implicit downscaling.
	require.Equal(t, 2000, img.Bounds().Dx())
	require.Equal(t, 2000, img.Bounds().Dy())

	// Compression took effect against a lossless encoding of the same raster.
	var lossless bytes.Buffer
	require.NoError(t, png.Encode(&lossless, img))
	require.Less(t, len(derived), lossless.Len())
}

func TestProcessIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	photo := &models.Photo{
		ID:           uuid.New(),
		OriginalPath: "photos/originals/a.jpg",
		WatermarkedPath: sql.NullString{
			String: "photos/watermarked/a_watermarked.jpg",
			Valid:  true,
		},
	}
	env.photos.add(photo)

	got, err := env.proc.Process(context.Background(), photo)
	require.NoError(t, err)

	// Same reference, not merely equal content.
	require.Same(t, photo, got)
	require.Zero(t, env.photos.derivativeWrites)
}

func TestProcessNoOriginalIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	photo := &models.Photo{ID: uuid.New()}
	env.photos.add(photo)

	got, err := env.proc.Process(context.Background(), photo)
	require.NoError(t, err)
	require.Same(t, photo, got)
	require.False(t, got.HasDerivative())
}

func TestProcessSoftFailsOnCorruptInput(t *testing.T) {
	env := newTestEnv(t)

	photo := env.saveOriginal(t, "photos/originals/broken.jpg", []byte("this is not an image"))

	got, err := env.proc.Process(context.Background(), photo)
	require.NoError(t, err, "decode failures must not surface to the caller")
	require.False(t, got.HasDerivative())
	require.Zero(t, env.photos.derivativeWrites)

	_, statErr := os.Stat(filepath.Join(env.root, "photos", "watermarked", "broken_watermarked.jpg"))
	require.True(t, os.IsNotExist(statErr), "no partial derivative may be stored")
}

func TestProcessPropagatesMissingOriginalRead(t *testing.T) {
	env := newTestEnv(t)

	photo := &models.Photo{
		ID:           uuid.New(),
		OriginalPath: "photos/originals/gone.jpg",
	}
	env.photos.add(photo)

	_, err := env.proc.Process(context.Background(), photo)
	require.Error(t, err, "storage read failures propagate")
}

func TestProcessConcurrentCallersWriteOnce(t *testing.T) {
	env := newTestEnv(t)

	original := solidJPEG(t, 200, 200)
	photo := env.saveOriginal(t, "photos/originals/race.jpg", original)

	const callers = 4

	var wg sync.WaitGroup
	results := make([]*models.Photo, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cp := *photo
			results[i], errs[i] = env.proc.Process(context.Background(), &cp)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.True(t, results[i].HasDerivative())
		require.Equal(t, results[0].WatermarkedPath.String, results[i].WatermarkedPath.String)
	}

	require.Equal(t, 1, env.photos.derivativeWrites)
}

func TestProcessCancelledContextWritesNothing(t *testing.T) {
	env := newTestEnv(t)

	original := solidJPEG(t, 100, 100)
	photo := env.saveOriginal(t, "photos/originals/cancelled.jpg", original)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.proc.Process(ctx, photo)
	require.Error(t, err)
	require.Zero(t, env.photos.derivativeWrites)

	_, statErr := os.Stat(filepath.Join(env.root, "photos", "watermarked", "cancelled_watermarked.jpg"))
	require.True(t, os.IsNotExist(statErr), "no half-written derivative after cancellation")
}

func TestDerivedNameDropsOriginalExtension(t *testing.T) {
	env := newTestEnv(t)

	original := solidJPEG(t, 50, 50)
	photo := env.saveOriginal(t, "photos/originals/sunset.jpeg", original)

	got, err := env.proc.Process(context.Background(), photo)
	require.NoError(t, err)
	require.Equal(t, "photos/watermarked/sunset_watermarked.jpg", got.WatermarkedPath.String)
}
