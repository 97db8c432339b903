package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fixitflow/internal/models"
)

type ImageRepositoryImpl struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.ComplaintImage) error {
	query := `
		INSERT INTO complaint_images (image_id, complaint_id, url, public_id, created_at)
		VALUES (:image_id, :complaint_id, :url, :public_id, :created_at)
	`

	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, image)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении изображения: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) GetByComplaintID(ctx context.Context, complaintID string) ([]models.ComplaintImage, error) {
	query := `SELECT * FROM complaint_images WHERE complaint_id = $1 ORDER BY created_at, image_id`

	var images []models.ComplaintImage
	err := r.db.SelectContext(ctx, &images, query, complaintID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении изображений: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) DeleteByComplaintID(ctx context.Context, complaintID string) error {
	query := `DELETE FROM complaint_images WHERE complaint_id = $1`

	_, err := r.db.ExecContext(ctx, query, complaintID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении изображений жалобы: %w", err)
	}

	return nil
}
