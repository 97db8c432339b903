package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"fixitflow/internal/models"
	"fixitflow/internal/service"
	"fixitflow/internal/storage"
)

type ComplaintResponse struct {
	Message   string            `json:"message,omitempty"`
	Complaint *models.Complaint `json:"complaint"`
}

type ComplaintsResponse struct {
	Complaints []models.Complaint `json:"complaints"`
}

// CreateComplaint принимает multipart форму: images[] (1..N файлов),
// description, lat, lng. Вся валидация выполняется до первой записи
func (h *Handlers) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, models.ErrUnauthenticated.Error(), http.StatusUnauthorized)
		return
	}

	maxBody := h.Cfg.MaxFileSize*int64(h.Cfg.MaxFilesPerRequest) + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(maxBody); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	description := r.FormValue("description")
	latStr := r.FormValue("lat")
	lngStr := r.FormValue("lng")

	if strings.TrimSpace(description) == "" || latStr == "" || lngStr == "" {
		WriteError(w, "Требуются описание и координаты", http.StatusBadRequest)
		return
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		WriteError(w, "Координаты должны быть числами", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["images"]
	if len(fileHeaders) == 0 {
		WriteError(w, "Требуется хотя бы одно изображение", http.StatusBadRequest)
		return
	}

	if len(fileHeaders) > h.Cfg.MaxFilesPerRequest {
		WriteError(w, fmt.Sprintf("Не более %d изображений за раз", h.Cfg.MaxFilesPerRequest),
			http.StatusBadRequest)
		return
	}

	files := make([]storage.UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > h.Cfg.MaxFileSize {
			WriteError(w, fmt.Sprintf("Файл %s слишком большой (макс. %d MB)",
				fh.Filename, h.Cfg.MaxFileSize/(1024*1024)), http.StatusBadRequest)
			return
		}

		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			WriteError(w, "Разрешены только изображения", http.StatusBadRequest)
			return
		}

		file, err := fh.Open()
		if err != nil {
			WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
			return
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			WriteError(w, "Не удалось прочитать файл", http.StatusBadRequest)
			return
		}

		files = append(files, storage.UploadFile{
			Name:        fh.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}

	serviceReq := service.CreateComplaintRequest{
		UserID:      user.UserID,
		Description: description,
		Lat:         lat,
		Lng:         lng,
		Files:       files,
	}

	complaint, err := h.ComplaintService.Create(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{
			Message: models.ErrComplaintCreationFailed.Error(),
			Error:   err.Error(),
		})
		return
	}

	WriteJSON(w, ComplaintResponse{
		Message:   "Жалоба успешно отправлена",
		Complaint: complaint,
	}, http.StatusCreated)
}

func (h *Handlers) MyComplaints(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, models.ErrUnauthenticated.Error(), http.StatusUnauthorized)
		return
	}

	complaints, err := h.ComplaintService.ListByOwner(r.Context(), user.UserID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if complaints == nil {
		complaints = []models.Complaint{}
	}

	WriteJSON(w, ComplaintsResponse{Complaints: complaints}, http.StatusOK)
}

func (h *Handlers) GetComplaint(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteError(w, models.ErrUnauthenticated.Error(), http.StatusUnauthorized)
		return
	}

	complaintID := mux.Vars(r)["id"]

	complaint, err := h.ComplaintService.GetByID(r.Context(), complaintID, user.UserID)
	if err != nil {
		if errors.Is(err, models.ErrComplaintNotFound) {
			WriteError(w, models.ErrComplaintNotFound.Error(), http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, ComplaintResponse{Complaint: complaint}, http.StatusOK)
}

func (h *Handlers) AdminListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.ComplaintService.ListAll(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if complaints == nil {
		complaints = []models.Complaint{}
	}

	WriteJSON(w, ComplaintsResponse{Complaints: complaints}, http.StatusOK)
}

func (h *Handlers) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["id"]

	var req struct {
		Status string `json:"status" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Отсутствует статус", http.StatusBadRequest)
		return
	}

	serviceReq := service.UpdateStatusRequest{
		ComplaintID: complaintID,
		Status:      req.Status,
	}

	if err := h.ComplaintService.UpdateStatus(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			WriteError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, models.ErrComplaintNotFound):
			WriteError(w, models.ErrComplaintNotFound.Error(), http.StatusNotFound)
		default:
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Статус жалобы обновлен"}, http.StatusOK)
}
