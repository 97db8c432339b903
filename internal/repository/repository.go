package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fixitflow/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	Finalize(ctx context.Context, complaintID string, images []models.ComplaintImage) (*models.Complaint, error)
	Delete(ctx context.Context, complaintID string) error
	GetByIDForUser(ctx context.Context, complaintID, userID string) (*models.Complaint, error)
	GetByOwner(ctx context.Context, userID string) ([]models.Complaint, error)
	GetAll(ctx context.Context) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, complaintID, status string) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.ComplaintImage) error
	GetByComplaintID(ctx context.Context, complaintID string) ([]models.ComplaintImage, error)
	DeleteByComplaintID(ctx context.Context, complaintID string) error
}

type Repository struct {
	User      UserRepository
	Complaint ComplaintRepository
	Image     ImageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	imageRepo := NewImageRepository(db)
	return &Repository{
		User:      NewUserRepository(db),
		Complaint: NewComplaintRepository(db, imageRepo),
		Image:     imageRepo,
	}
}
