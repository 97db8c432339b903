package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"fixitflow/internal/models"
)

func complaintColumns() []string {
	return []string{
		"complaint_id", "user_id", "description", "lat", "lng", "status", "created_at", "updated_at",
	}
}

func emptyImageRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"image_id", "complaint_id", "url", "public_id", "created_at"})
}

func TestComplaintRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewComplaintRepository(sqlxDB, NewImageRepository(sqlxDB))

	ctx := context.Background()

	complaint := &models.Complaint{
		UserID:      "user-123",
		Description: "Pothole on Main St",
		Lat:         22.5726,
		Lng:         88.3639,
	}

	mock.ExpectExec("INSERT INTO complaints").
		WithArgs(
			sqlmock.AnyArg(), // complaint_id генерируется в репозитории
			"user-123",
			"Pothole on Main St",
			22.5726,
			88.3639,
			models.StatusMaterializing,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(ctx, complaint)

	assert.NoError(t, err)
	assert.NotEmpty(t, complaint.ComplaintID)
	assert.Equal(t, models.StatusMaterializing, complaint.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_Finalize(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewComplaintRepository(sqlxDB, NewImageRepository(sqlxDB))

	ctx := context.Background()
	now := time.Now()

	images := []models.ComplaintImage{
		{URL: "http://minio/complaints/c-1/a.jpg", PublicID: "complaints/c-1/a.jpg"},
		{URL: "http://minio/complaints/c-1/b.jpg", PublicID: "complaints/c-1/b.jpg"},
	}

	mock.ExpectExec("INSERT INTO complaint_images").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO complaint_images").
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec("UPDATE complaints SET").
		WithArgs(models.StatusPending, "c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT \\* FROM complaints WHERE complaint_id").
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(complaintColumns()).
			AddRow("c-1", "user-123", "Pothole on Main St", 22.5726, 88.3639,
				models.StatusPending, now, now))

	mock.ExpectQuery("SELECT \\* FROM complaint_images WHERE complaint_id").
		WithArgs("c-1").
		WillReturnRows(emptyImageRows().
			AddRow("img-1", "c-1", images[0].URL, images[0].PublicID, now).
			AddRow("img-2", "c-1", images[1].URL, images[1].PublicID, now))

	complaint, err := repo.Finalize(ctx, "c-1", images)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, complaint.Status)
	assert.Len(t, complaint.Images, 2)
	assert.Equal(t, models.Location{Lat: 22.5726, Lng: 88.3639}, complaint.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_GetByIDForUser(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewComplaintRepository(sqlxDB, NewImageRepository(sqlxDB))

	ctx := context.Background()
	now := time.Now()

	t.Run("Владелец получает свою жалобу", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM complaints WHERE complaint_id").
			WithArgs("c-1", "user-a").
			WillReturnRows(sqlmock.NewRows(complaintColumns()).
				AddRow("c-1", "user-a", "Broken lamp", 55.75, 37.61,
					models.StatusPending, now, now))

		mock.ExpectQuery("SELECT \\* FROM complaint_images WHERE complaint_id").
			WithArgs("c-1").
			WillReturnRows(emptyImageRows().
				AddRow("img-1", "c-1", "http://minio/complaints/c-1/a.jpg", "complaints/c-1/a.jpg", now))

		complaint, err := repo.GetByIDForUser(ctx, "c-1", "user-a")

		assert.NoError(t, err)
		assert.Equal(t, "c-1", complaint.ComplaintID)
		assert.Len(t, complaint.Images, 1)
	})

	t.Run("Чужая жалоба неотличима от несуществующей", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM complaints WHERE complaint_id").
			WithArgs("c-1", "user-b").
			WillReturnRows(sqlmock.NewRows(complaintColumns()))

		complaint, err := repo.GetByIDForUser(ctx, "c-1", "user-b")

		assert.Nil(t, complaint)
		assert.ErrorIs(t, err, models.ErrComplaintNotFound)
	})
}

func TestComplaintRepository_GetByOwner(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewComplaintRepository(sqlxDB, NewImageRepository(sqlxDB))

	ctx := context.Background()
	now := time.Now()

	// newest first: порядок строк отражает ORDER BY created_at DESC
	mock.ExpectQuery("SELECT \\* FROM complaints").
		WithArgs("user-a", models.StatusMaterializing).
		WillReturnRows(sqlmock.NewRows(complaintColumns()).
			AddRow("c-3", "user-a", "third", 1.0, 1.0, models.StatusPending, now, now).
			AddRow("c-2", "user-a", "second", 1.0, 1.0, models.StatusPending, now.Add(-time.Hour), now).
			AddRow("c-1", "user-a", "first", 1.0, 1.0, models.StatusResolved, now.Add(-2*time.Hour), now))

	for _, id := range []string{"c-3", "c-2", "c-1"} {
		mock.ExpectQuery("SELECT \\* FROM complaint_images WHERE complaint_id").
			WithArgs(id).
			WillReturnRows(emptyImageRows())
	}

	complaints, err := repo.GetByOwner(ctx, "user-a")

	assert.NoError(t, err)
	assert.Len(t, complaints, 3)
	assert.Equal(t, "c-3", complaints[0].ComplaintID)
	assert.Equal(t, "c-1", complaints[2].ComplaintID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_Delete(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewComplaintRepository(sqlxDB, NewImageRepository(sqlxDB))

	ctx := context.Background()

	mock.ExpectExec("DELETE FROM complaints WHERE complaint_id").
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec("DELETE FROM complaint_images WHERE complaint_id").
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(ctx, "c-1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintRepository_UpdateStatus(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewComplaintRepository(sqlxDB, NewImageRepository(sqlxDB))

	ctx := context.Background()

	t.Run("Статус обновлен", func(t *testing.T) {
		mock.ExpectExec("UPDATE complaints SET").
			WithArgs(models.StatusResolved, "c-1", models.StatusMaterializing).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, "c-1", models.StatusResolved)

		assert.NoError(t, err)
	})

	t.Run("Жалоба не найдена", func(t *testing.T) {
		mock.ExpectExec("UPDATE complaints SET").
			WithArgs(models.StatusResolved, "missing", models.StatusMaterializing).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, "missing", models.StatusResolved)

		assert.ErrorIs(t, err, models.ErrComplaintNotFound)
	})
}
