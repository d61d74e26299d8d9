package listGallery

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"photoMarketplace/internal/gallery"
	"photoMarketplace/internal/lib/api/response"
	"photoMarketplace/internal/lib/logger/sl"
	"photoMarketplace/internal/locator"
	"photoMarketplace/internal/models"
	"photoMarketplace/internal/storage/files"
)

type Item struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CaptureDate    string    `json:"capture_date"`
	WatermarkedURL string    `json:"watermarked_url"`
}

type Response struct {
	response.Response
	Photos []Item `json:"photos"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=GalleryLister
type GalleryLister interface {
	ListGallery(ctx context.Context) ([]models.Photo, error)
}

// New serves the public gallery: complete records whose derivative is ready,
// newest first, watermarked rendition only. Eligible records whose derivation
// soft-failed are held back until reprocessed.
func New(log *slog.Logger, photos GalleryLister, fileStore files.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.gallery.listGallery.New"

		log := log.With(slog.String("op", op))

		listed, err := photos.ListGallery(r.Context())
		if err != nil {
			log.Error("failed to list gallery", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list gallery"))
			return
		}

		req := locator.FromRequest(r)

		items := make([]Item, 0, len(listed))
		for _, photo := range listed {
			if !gallery.IsReady(photo) {
				continue
			}

			items = append(items, Item{
				ID:             photo.ID,
				Title:          photo.Title,
				Description:    photo.Description,
				CaptureDate:    photo.CaptureDate.Time.Format("2006-01-02"),
				WatermarkedURL: locator.Resolve(fileStore.Ref(photo.WatermarkedPath.String).URL, req),
			})
		}

		log.Info("gallery listed", slog.Int("count", len(items)))

		render.JSON(w, r, Response{
			Response: response.OK(),
			Photos:   items,
		})
	}
}
