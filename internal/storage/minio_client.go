package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"fixitflow/internal/config"
)

// UploadFile - содержимое одного файла из multipart формы
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadedImage - результат загрузки: публичный URL и имя объекта,
// по которому файл можно удалить
type UploadedImage struct {
	URL      string
	PublicID string
}

type Storage interface {
	Upload(ctx context.Context, folder string, file UploadFile) (UploadedImage, error)
	UploadBatch(ctx context.Context, folder string, files []UploadFile) ([]UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
	DeleteFolder(ctx context.Context, prefix string) error
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

func (m *MinIOClient) Upload(ctx context.Context, folder string, file UploadFile) (UploadedImage, error) {
	fileExt := strings.ToLower(filepath.Ext(file.Name))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName,
		bytes.NewReader(file.Data), int64(len(file.Data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": file.Name,
			},
		})
	if err != nil {
		return UploadedImage{}, fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	imageURL := fmt.Sprintf("%s/%s/%s", m.cfg.MinIO.PublicURL, m.cfg.MinIO.BucketName, objectName)

	return UploadedImage{URL: imageURL, PublicID: objectName}, nil
}

// UploadBatch грузит все файлы параллельно. Если хотя бы одна загрузка
// упала, возвращается только ошибка: уже загруженные объекты остаются
// в хранилище, чистить их - забота вызывающего (DeleteFolder).
func (m *MinIOClient) UploadBatch(ctx context.Context, folder string, files []UploadFile) ([]UploadedImage, error) {
	g, ctx := errgroup.WithContext(ctx)
	uploaded := make([]UploadedImage, len(files))

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			image, err := m.Upload(ctx, folder, file)
			if err != nil {
				return err
			}
			uploaded[i] = image
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return uploaded, nil
}

func (m *MinIOClient) Delete(ctx context.Context, publicID string) error {
	err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, publicID,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

// DeleteFolder удаляет все объекты с данным префиксом
func (m *MinIOClient) DeleteFolder(ctx context.Context, prefix string) error {
	objects := m.client.ListObjects(ctx, m.cfg.MinIO.BucketName, minio.ListObjectsOptions{
		Prefix:    prefix + "/",
		Recursive: true,
	})

	for object := range objects {
		if object.Err != nil {
			return fmt.Errorf("ошибка перечисления объектов: %w", object.Err)
		}
		if err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, object.Key,
			minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("ошибка удаления объекта %s: %w", object.Key, err)
		}
	}

	return nil
}
