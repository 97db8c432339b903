package handlers

import (
	"github.com/go-playground/validator/v10"

	"fixitflow/internal/config"
	"fixitflow/internal/database"
	"fixitflow/internal/repository"
	"fixitflow/internal/service"
)

type Handlers struct {
	AuthService      service.AuthService
	ComplaintService service.ComplaintService
	UserRepo         repository.UserRepository
	DB               *database.DB
	Cfg              *config.Config
	Validate         *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, db *database.DB, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:      service.Auth,
		ComplaintService: service.Complaint,
		UserRepo:         repo.User,
		DB:               db,
		Cfg:              config,
		Validate:         validator.New(),
	}
}
