package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"qavat/internal/domain"
	"qavat/internal/repository"

	"github.com/google/uuid"
)

// MaxImageSize — картинки объявлений, видео не принимаем.
const MaxImageSize = 10 * 1024 * 1024

var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type Repository interface {
	Create(ctx context.Context, u *domain.Upload) error
	GetByID(ctx context.Context, id string) (*domain.Upload, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Upload, error)
}

// Service кладёт картинки на локальный диск: uploads/YYYY/MM/<uuid>.<ext>.
// Имя файла — только uuid, оригинальное имя хранится в записи.
type Service struct {
	repo       Repository
	baseDir    string
	staticBase string
}

func NewService(repo Repository, baseDir, staticBase string) *Service {
	return &Service{repo: repo, baseDir: baseDir, staticBase: staticBase}
}

func (s *Service) Upload(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*domain.Upload, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxImageSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer file.Close()

	// тип определяем по содержимому, не по расширению
	head := make([]byte, 512)
	n, _ := file.Read(head)
	mimeType := strings.Split(http.DetectContentType(head[:n]), ";")[0]
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind uploaded file: %w", err)
	}

	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d", now.Year(), now.Month())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	id := uuid.NewString()
	filename := id + ext
	absPath := filepath.Join(absDir, filename)

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("write file: %w", err)
	}

	relPath := filepath.Join(relDir, filename)
	rec := &domain.Upload{
		ID:           id,
		UserID:       userID,
		OriginalName: fileHeader.Filename,
		FilePath:     relPath,
		FileURL:      s.staticBase + "/" + strings.ReplaceAll(relPath, "\\", "/"),
		MimeType:     mimeType,
		Size:         fileHeader.Size,
		CreatedAt:    now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("save upload record: %w", err)
	}
	return rec, nil
}

// Delete убирает файл и запись. Чужие загрузки может удалять только админ.
func (s *Service) Delete(ctx context.Context, id string, userID int64, role string) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if rec.UserID != userID && role != string(domain.RoleAdmin) {
		return ErrNotOwner
	}

	// файла может уже не быть, это не ошибка
	_ = os.Remove(filepath.Join(s.baseDir, rec.FilePath))

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListMy(ctx context.Context, userID int64) ([]domain.Upload, error) {
	return s.repo.ListByUser(ctx, userID)
}
