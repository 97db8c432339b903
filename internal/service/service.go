package service

import (
	"fixitflow/internal/config"
	"fixitflow/internal/repository"
	"fixitflow/internal/storage"
)

type Service struct {
	Auth      AuthService
	Complaint ComplaintService
}

func NewService(repo *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:      NewAuthService(repo.User, cfg),
		Complaint: NewComplaintService(repo.Complaint, storage),
	}
}
