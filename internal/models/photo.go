package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Photo is the central record of the marketplace. OriginalPath and
// WatermarkedPath are stored-file keys, not URLs; a file store turns them
// into servable references. WatermarkedPath is written at most once, by the
// derivation pipeline.
type Photo struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	UploaderID      uuid.UUID      `db:"uploader_id" json:"uploader_id"`
	Title           string         `db:"title" json:"title"`
	Description     string         `db:"description" json:"description"`
	CaptureDate     sql.NullTime   `db:"capture_date" json:"capture_date"`
	OriginalPath    string         `db:"original_path" json:"original_path"`
	WatermarkedPath sql.NullString `db:"watermarked_path" json:"watermarked_path"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// HasOriginal reports whether the record references original bytes at all.
func (p *Photo) HasOriginal() bool {
	return p.OriginalPath != ""
}

// HasDerivative reports whether the watermarked rendition has been produced.
func (p *Photo) HasDerivative() bool {
	return p.WatermarkedPath.Valid && p.WatermarkedPath.String != ""
}
