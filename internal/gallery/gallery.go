package gallery

import (
	"sort"
	"strings"

	"photoMarketplace/internal/models"
)

// IsPublic reports gallery eligibility: a record needs a title, a description
// and a capture date before it may appear in public listings.
func IsPublic(p models.Photo) bool {
	return p.Title != "" && p.Description != "" && p.CaptureDate.Valid
}

// IsReady reports whether the watermarked rendition exists. A record can be
// eligible but not ready (derivation soft-failed and has not been reprocessed
// yet); the two states are distinct.
func IsReady(p models.Photo) bool {
	return p.HasDerivative()
}

// ListPublic filters to eligible records, newest first. Equal timestamps are
// broken by id descending so the order is deterministic.
func ListPublic(photos []models.Photo) []models.Photo {
	out := make([]models.Photo, 0, len(photos))
	for _, p := range photos {
		if IsPublic(p) {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) > 0
	})

	return out
}
