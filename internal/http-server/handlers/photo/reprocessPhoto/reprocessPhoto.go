package reprocessPhoto

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"photoMarketplace/internal/kafka/producer"
	"photoMarketplace/internal/lib/api/response"
	"photoMarketplace/internal/lib/logger/sl"
	"photoMarketplace/internal/models"
	"photoMarketplace/internal/processor"
)

type Response struct {
	response.Response
	Queued bool `json:"queued"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PhotoGetter
type PhotoGetter interface {
	GetPhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error)
}

// New queues a derivation re-run for a record whose derivative is missing,
// e.g. after a soft-failed upload. Records that already have a derivative are
// left alone; the pipeline never runs twice for the same record.
func New(log *slog.Logger, photos PhotoGetter, reprocess producer.ProducerIface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.photo.reprocessPhoto.New"

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

		if photo.HasDerivative() {
			log.Info("photo already has a derivative", slog.String("photo_id", photoID.String()))
			render.JSON(w, r, Response{Response: response.OK(), Queued: false})
			return
		}

		message, err := json.Marshal(processor.ReprocessMessage{PhotoID: photoID})
		if err != nil {
			log.Error("failed to marshal reprocess message", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to prepare message"))
			return
		}

		if err = reprocess.SendMessage(r.Context(), message); err != nil {
			log.Error("failed to publish reprocess message", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to queue reprocessing"))
			return
		}

		log.Info("reprocess queued", slog.String("photo_id", photoID.String()))

		render.JSON(w, r, Response{Response: response.OK(), Queued: true})
	}
}
