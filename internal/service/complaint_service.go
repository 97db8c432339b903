package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fixitflow/internal/models"
	"fixitflow/internal/repository"
	"fixitflow/internal/storage"
)

type CreateComplaintRequest struct {
	UserID      string
	Description string
	Lat         float64
	Lng         float64
	Files       []storage.UploadFile
}

type UpdateStatusRequest struct {
	ComplaintID string
	Status      string
}

type ComplaintService interface {
	Create(ctx context.Context, req CreateComplaintRequest) (*models.Complaint, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Complaint, error)
	GetByID(ctx context.Context, complaintID, userID string) (*models.Complaint, error)
	ListAll(ctx context.Context) ([]models.Complaint, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) error
}

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	storage       storage.Storage
}

func NewComplaintService(complaintRepo repository.ComplaintRepository, storage storage.Storage) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		storage:       storage,
	}
}

// Create проводит жалобу через двухфазный сценарий: предварительная запись
// в БД, параллельная загрузка изображений в папку с id записи, финализация.
// Любой сбой после первой фазы откатывает запись, так что жалоба либо
// существует целиком, либо не существует вовсе
func (s *complaintService) Create(ctx context.Context, req CreateComplaintRequest) (*models.Complaint, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: отсутствует описание", models.ErrValidation)
	}

	if len(req.Files) == 0 {
		return nil, fmt.Errorf("%w: требуется хотя бы одно изображение", models.ErrValidation)
	}

	// обрыв соединения с клиентом не прерывает начатую запись:
	// загрузка и откат доводятся до конца на стороне сервера
	ctx = context.WithoutCancel(ctx)

	complaint := &models.Complaint{
		UserID:      req.UserID,
		Description: req.Description,
		Lat:         req.Lat,
		Lng:         req.Lng,
	}

	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrComplaintCreationFailed, err)
	}

	folder := "complaints/" + complaint.ComplaintID

	uploaded, err := s.storage.UploadBatch(ctx, folder, req.Files)
	if err != nil {
		s.rollback(ctx, complaint.ComplaintID, folder)
		return nil, fmt.Errorf("%w: %w", models.ErrComplaintCreationFailed,
			fmt.Errorf("%w: %w", models.ErrStorageUploadFailed, err))
	}

	images := make([]models.ComplaintImage, len(uploaded))
	for i, img := range uploaded {
		images[i] = models.ComplaintImage{
			URL:      img.URL,
			PublicID: img.PublicID,
		}
	}

	finalized, err := s.complaintRepo.Finalize(ctx, complaint.ComplaintID, images)
	if err != nil {
		s.rollback(ctx, complaint.ComplaintID, folder)
		return nil, fmt.Errorf("%w: %w", models.ErrComplaintCreationFailed, err)
	}

	return finalized, nil
}

// rollback убирает предварительную запись и уже загруженные объекты.
// Обе операции best-effort: их сбой только логируется, исходная ошибка
// сценария всегда важнее
func (s *complaintService) rollback(ctx context.Context, complaintID, folder string) {
	if err := s.complaintRepo.Delete(ctx, complaintID); err != nil {
		log.Printf("Не удалось откатить жалобу %s: %v", complaintID, err)
	}

	if err := s.storage.DeleteFolder(ctx, folder); err != nil {
		log.Printf("Не удалось удалить папку %s из хранилища: %v", folder, err)
	}
}

func (s *complaintService) ListByOwner(ctx context.Context, userID string) ([]models.Complaint, error) {
	return s.complaintRepo.GetByOwner(ctx, userID)
}

func (s *complaintService) GetByID(ctx context.Context, complaintID, userID string) (*models.Complaint, error) {
	return s.complaintRepo.GetByIDForUser(ctx, complaintID, userID)
}

func (s *complaintService) ListAll(ctx context.Context) ([]models.Complaint, error) {
	return s.complaintRepo.GetAll(ctx)
}

func (s *complaintService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) error {
	allowed := map[string]bool{
		models.StatusPending:    true,
		models.StatusInProgress: true,
		models.StatusResolved:   true,
		models.StatusRejected:   true,
	}

	if !allowed[req.Status] {
		return fmt.Errorf("%w: недопустимый статус %q", models.ErrValidation, req.Status)
	}

	return s.complaintRepo.UpdateStatus(ctx, req.ComplaintID, req.Status)
}
