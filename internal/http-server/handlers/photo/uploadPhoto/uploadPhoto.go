package uploadPhoto

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"photoMarketplace/internal/kafka/producer"
	"photoMarketplace/internal/lib/api/response"
	"photoMarketplace/internal/lib/logger/sl"
	"photoMarketplace/internal/locator"
	"photoMarketplace/internal/models"
	"photoMarketplace/internal/storage/files"
)

const originalsDir = "photos/originals"

type Request struct {
	UploaderID  string `validate:"required,uuid"`
	Title       string `validate:"required,max=255"`
	Description string `validate:"omitempty"`
	CaptureDate string `validate:"omitempty,datetime=2006-01-02"`
}

type Response struct {
	response.Response
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CaptureDate    *string   `json:"capture_date"`
	OriginalURL    string    `json:"original_url"`
	WatermarkedURL *string   `json:"watermarked_url"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PhotoCreator
type PhotoCreator interface {
	CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Deriver
type Deriver interface {
	Process(ctx context.Context, photo *models.Photo) (*models.Photo, error)
}

// New handles an upload: the original is stored and the record saved first,
// then the derivation runs synchronously for this one record. A derivation
// soft failure still returns the saved record; only storage and database
// failures surface as errors.
func New(
	log *slog.Logger,
	photos PhotoCreator,
	fileStore files.Store,
	deriver Deriver,
	events producer.ProducerIface,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.photo.uploadPhoto.New"

		log := log.With(slog.String("op", op))

		file, header, err := r.FormFile("image")
		if err != nil {
			log.Error("failed to get file from request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to get file from request"))
			return
		}
		defer func(file multipart.File) {
			if err := file.Close(); err != nil {
				log.Warn("failed to close uploaded file", sl.Err(err))
			}
		}(file)

		if header.Size == 0 {
			log.Error("received empty file")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("received empty file"))
			return
		}

		req := Request{
			UploaderID:  r.FormValue("uploader_id"),
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			CaptureDate: r.FormValue("capture_date"),
		}

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		uploaderID, _ := uuid.Parse(req.UploaderID)

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext == "" {
			ext = ".jpg"
		}
		key := path.Join(originalsDir, uuid.New().String()+ext)

		stored, err := fileStore.Save(r.Context(), key, file)
		if err != nil {
			log.Error("failed to store original", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to store file"))
			return
		}

		photo := &models.Photo{
			UploaderID:   uploaderID,
			Title:        req.Title,
			Description:  req.Description,
			CaptureDate:  parseCaptureDate(req.CaptureDate),
			OriginalPath: stored.Key,
		}

		photo, err = photos.CreatePhoto(r.Context(), photo)
		if err != nil {
			log.Error("failed to save photo metadata", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save photo metadata"))
			return
		}

		photo, err = deriver.Process(r.Context(), photo)
		if err != nil {
			log.Error("failed to process photo", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process photo"))
			return
		}

		publishEvent(r.Context(), log, events, photo)

		log.Info("photo uploaded", slog.String("photo_id", photo.ID.String()))

		render.JSON(w, r, newResponse(photo, fileStore, locator.FromRequest(r)))
	}
}

// publishEvent is a fire-and-forget handoff; a broker failure never fails the
// upload.
func publishEvent(ctx context.Context, log *slog.Logger, events producer.ProducerIface, photo *models.Photo) {
	event := struct {
		Event   string    `json:"event"`
		PhotoID uuid.UUID `json:"photo_id"`
		Derived bool      `json:"derived"`
	}{
		Event:   "photo.uploaded",
		PhotoID: photo.ID,
		Derived: photo.HasDerivative(),
	}

	message, err := json.Marshal(event)
	if err != nil {
		log.Warn("failed to marshal photo event", sl.Err(err))
		return
	}

	if err = events.SendMessage(ctx, message); err != nil {
		log.Warn("failed to publish photo event", sl.Err(err))
	}
}

func newResponse(photo *models.Photo, fileStore files.Store, req *locator.Request) Response {
	resp := Response{
		Response:    response.OK(),
		ID:          photo.ID,
		Title:       photo.Title,
		Description: photo.Description,
		OriginalURL: locator.Resolve(fileStore.Ref(photo.OriginalPath).URL, req),
	}

	if photo.CaptureDate.Valid {
		date := photo.CaptureDate.Time.Format("2006-01-02")
		resp.CaptureDate = &date
	}
	if photo.HasDerivative() {
		url := locator.Resolve(fileStore.Ref(photo.WatermarkedPath.String).URL, req)
		resp.WatermarkedURL = &url
	}

	return resp
}

func parseCaptureDate(value string) sql.NullTime {
	if value == "" {
		return sql.NullTime{}
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: t, Valid: true}
}
