package getPhoto

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"photoMarketplace/internal/lib/api/response"
	"photoMarketplace/internal/lib/logger/sl"
	"photoMarketplace/internal/locator"
	"photoMarketplace/internal/models"
	"photoMarketplace/internal/storage/files"
)

// Response carries the download link pair: the uploader-facing original and
// the watermarked rendition, both resolved to callable URLs.
type Response struct {
	response.Response
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	OriginalURL    string    `json:"original_url"`
	WatermarkedURL *string   `json:"watermarked_url"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PhotoGetter
type PhotoGetter interface {
	GetPhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error)
}

func New(log *slog.Logger, photos PhotoGetter, fileStore files.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.photo.getPhoto.New"

		log := log.With(slog.String("op", op))

		idStr := chi.URLParam(r, "id")
		photoID, err := uuid.Parse(idStr)
		if err != nil {
			log.Error("failed to parse photo ID", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid photo ID"))
			return
		}

		photo, err := photos.GetPhoto(r.Context(), photoID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				log.Warn("photo not found", slog.String("photo_id", photoID.String()))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("photo not found"))
				return
			}

			log.Error("failed to get photo from storage", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get photo"))
			return
		}

		req := locator.FromRequest(r)

		resp := Response{
			Response:    response.OK(),
			ID:          photo.ID,
			Title:       photo.Title,
			OriginalURL: locator.Resolve(fileStore.Ref(photo.OriginalPath).URL, req),
		}
		if photo.HasDerivative() {
			url := locator.Resolve(fileStore.Ref(photo.WatermarkedPath.String).URL, req)
			resp.WatermarkedURL = &url
		}

		log.Info("photo retrieved", slog.String("photo_id", photoID.String()))

		render.JSON(w, r, resp)
	}
}
