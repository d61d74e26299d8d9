package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"photoMarketplace/internal/config"
	"photoMarketplace/internal/models"

	_ "github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) CreatePhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	const op = "storage.postgres.CreatePhoto"

	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}

	query := `
        INSERT INTO photos (id, uploader_id, title, description, capture_date, original_path)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, uploader_id, title, description, capture_date, original_path, watermarked_path, created_at`

	var out models.Photo

	err := s.DB.QueryRowContext(ctx, query,
		photo.ID,
		photo.UploaderID,
		photo.Title,
		photo.Description,
		photo.CaptureDate,
		photo.OriginalPath,
	).Scan(
		&out.ID,
		&out.UploaderID,
		&out.Title,
		&out.Description,
		&out.CaptureDate,
		&out.OriginalPath,
		&out.WatermarkedPath,
		&out.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (s *Storage) GetPhoto(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	const op = "storage.postgres.GetPhoto"

	query := `
        SELECT id, uploader_id, title, description, capture_date, original_path, watermarked_path, created_at
        FROM photos
        WHERE id = $1`

	photo := &models.Photo{}

	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&photo.ID,
		&photo.UploaderID,
		&photo.Title,
		&photo.Description,
		&photo.CaptureDate,
		&photo.OriginalPath,
		&photo.WatermarkedPath,
		&photo.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s: photo with ID %s not found: %w", op, id, sql.ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photo, nil
}

// SetWatermarkedPath writes the derivative reference at most once: the update
// only lands while the column is still NULL. When another writer got there
// first the winning key is read back and returned, so concurrent derivations
// converge on a single reference.
func (s *Storage) SetWatermarkedPath(ctx context.Context, id uuid.UUID, key string) (string, error) {
	const op = "storage.postgres.SetWatermarkedPath"

	query := `
        UPDATE photos
        SET watermarked_path = $2
        WHERE id = $1 AND watermarked_path IS NULL`

	result, err := s.DB.ExecContext(ctx, query, id, key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected > 0 {
		return key, nil
	}

	var current sql.NullString
	err = s.DB.QueryRowContext(ctx, `SELECT watermarked_path FROM photos WHERE id = $1`, id).Scan(&current)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return current.String, nil
}

// ListGallery returns records eligible for the public gallery, newest first.
// The predicate is the SQL twin of gallery.IsPublic.
func (s *Storage) ListGallery(ctx context.Context) ([]models.Photo, error) {
	const op = "storage.postgres.ListGallery"

	query := `
        SELECT id, uploader_id, title, description, capture_date, original_path, watermarked_path, created_at
        FROM photos
        WHERE title <> '' AND description <> '' AND capture_date IS NOT NULL
        ORDER BY created_at DESC, id DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var photo models.Photo
		if err = rows.Scan(
			&photo.ID,
			&photo.UploaderID,
			&photo.Title,
			&photo.Description,
			&photo.CaptureDate,
			&photo.OriginalPath,
			&photo.WatermarkedPath,
			&photo.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		photos = append(photos, photo)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photos, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
