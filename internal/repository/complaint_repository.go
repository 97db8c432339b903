package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fixitflow/internal/models"
)

type ComplaintRepositoryImpl struct {
	db        *sqlx.DB
	imageRepo ImageRepository
}

func NewComplaintRepository(db *sqlx.DB, imageRepo ImageRepository) *ComplaintRepositoryImpl {
	return &ComplaintRepositoryImpl{db: db, imageRepo: imageRepo}
}

// Create вставляет предварительную запись без изображений. Её id служит
// папкой в хранилище изображений для этой попытки
func (r *ComplaintRepositoryImpl) Create(ctx context.Context, complaint *models.Complaint) error {
	if complaint.ComplaintID == "" {
		complaint.ComplaintID = uuid.New().String()
	}

	now := time.Now()
	complaint.Status = models.StatusMaterializing
	complaint.CreatedAt = now
	complaint.UpdatedAt = now

	query := `
		INSERT INTO complaints
		(complaint_id, user_id, description, lat, lng, status, created_at, updated_at)
		VALUES
		(:complaint_id, :user_id, :description, :lat, :lng, :status, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, complaint)
	if err != nil {
		return fmt.Errorf("ошибка при создании жалобы: %w", err)
	}

	return nil
}

// Finalize записывает загруженные изображения и переводит жалобу
// из materializing в pending
func (r *ComplaintRepositoryImpl) Finalize(ctx context.Context, complaintID string, images []models.ComplaintImage) (*models.Complaint, error) {
	for i := range images {
		images[i].ComplaintID = complaintID
		if err := r.imageRepo.Create(ctx, &images[i]); err != nil {
			return nil, err
		}
	}

	query := `
		UPDATE complaints SET
			status = $1,
			updated_at = CURRENT_TIMESTAMP
		WHERE complaint_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, models.StatusPending, complaintID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при финализации жалобы: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return nil, models.ErrComplaintNotFound
	}

	return r.getByID(ctx, complaintID)
}

func (r *ComplaintRepositoryImpl) Delete(ctx context.Context, complaintID string) error {
	query := `DELETE FROM complaints WHERE complaint_id = $1`

	_, err := r.db.ExecContext(ctx, query, complaintID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении жалобы: %w", err)
	}

	return r.imageRepo.DeleteByComplaintID(ctx, complaintID)
}

func (r *ComplaintRepositoryImpl) getByID(ctx context.Context, complaintID string) (*models.Complaint, error) {
	query := `SELECT * FROM complaints WHERE complaint_id = $1`

	var complaint models.Complaint
	err := r.db.GetContext(ctx, &complaint, query, complaintID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("ошибка при получении жалобы: %w", err)
	}

	if err := r.attachImages(ctx, &complaint); err != nil {
		return nil, err
	}

	return &complaint, nil
}

// GetByIDForUser отдает жалобу только её владельцу. Чужая и несуществующая
// жалоба неразличимы в ответе
func (r *ComplaintRepositoryImpl) GetByIDForUser(ctx context.Context, complaintID, userID string) (*models.Complaint, error) {
	query := `SELECT * FROM complaints WHERE complaint_id = $1 AND user_id = $2`

	var complaint models.Complaint
	err := r.db.GetContext(ctx, &complaint, query, complaintID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("ошибка при получении жалобы: %w", err)
	}

	if err := r.attachImages(ctx, &complaint); err != nil {
		return nil, err
	}

	return &complaint, nil
}

func (r *ComplaintRepositoryImpl) GetByOwner(ctx context.Context, userID string) ([]models.Complaint, error) {
	query := `
		SELECT * FROM complaints
		WHERE user_id = $1 AND status <> $2
		ORDER BY created_at DESC
	`

	var complaints []models.Complaint
	err := r.db.SelectContext(ctx, &complaints, query, userID, models.StatusMaterializing)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении жалоб пользователя: %w", err)
	}

	for i := range complaints {
		if err := r.attachImages(ctx, &complaints[i]); err != nil {
			return nil, err
		}
	}

	return complaints, nil
}

func (r *ComplaintRepositoryImpl) GetAll(ctx context.Context) ([]models.Complaint, error) {
	query := `
		SELECT * FROM complaints
		WHERE status <> $1
		ORDER BY created_at DESC
	`

	var complaints []models.Complaint
	err := r.db.SelectContext(ctx, &complaints, query, models.StatusMaterializing)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении всех жалоб: %w", err)
	}

	for i := range complaints {
		if err := r.attachImages(ctx, &complaints[i]); err != nil {
			return nil, err
		}
	}

	return complaints, nil
}

func (r *ComplaintRepositoryImpl) UpdateStatus(ctx context.Context, complaintID, status string) error {
	query := `
		UPDATE complaints SET
			status = $1,
			updated_at = CURRENT_TIMESTAMP
		WHERE complaint_id = $2 AND status <> $3
	`

	result, err := r.db.ExecContext(ctx, query, status, complaintID, models.StatusMaterializing)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении статуса жалобы: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrComplaintNotFound
	}

	return nil
}

func (r *ComplaintRepositoryImpl) attachImages(ctx context.Context, complaint *models.Complaint) error {
	images, err := r.imageRepo.GetByComplaintID(ctx, complaint.ComplaintID)
	if err != nil {
		return err
	}

	complaint.Images = images
	complaint.Location = models.Location{Lat: complaint.Lat, Lng: complaint.Lng}
	return nil
}
