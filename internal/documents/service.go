package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDocumentNotFound is returned when no document record matches.
var ErrDocumentNotFound = errors.New("document not found")

// Service stores mission documents: the binary goes to the storage
// driver under a mission-scoped key, the metadata into the documents
// table.
type Service struct {
	driver StorageDriver
	db     *gorm.DB
}

func NewService(driver StorageDriver, db *gorm.DB) *Service {
	return &Service{driver: driver, db: db}
}

// Upload saves the file for the given mission and records its metadata.
func (s *Service) Upload(ctx context.Context, missionID uint, filename string, kind DocumentKind, reader io.Reader, size int64, mime string) (*Document, error) {
	if mime == "" {
		mime = "application/octet-stream"
	}
	if kind == "" {
		kind = KindOther
	}

	id := uuid.New()
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("missions/%d/%s%s", missionID, id.String(), ext)

	if err := s.driver.Save(ctx, key, reader, mime); err != nil {
		return nil, fmt.Errorf("storage driver failed: %w", err)
	}

	url, err := s.driver.GenerateURL(ctx, key, 0)
	if err != nil {
		if delErr := s.driver.Delete(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to cleanup orphaned file", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to generate URL: %w", err)
	}

	doc := &Document{
		PublicID:  id,
		MissionID: missionID,
		Name:      filename,
		Kind:      kind,
		Key:       key,
		URL:       url,
		Size:      size,
		MimeType:  mime,
	}
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		if delErr := s.driver.Delete(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to cleanup orphaned file", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("create document record: %w", err)
	}

	slog.InfoContext(ctx, "Document uploaded", "mission_id", missionID, "key", key, "kind", kind)
	return doc, nil
}

// List returns the documents attached to a mission, newest first.
func (s *Service) List(ctx context.Context, missionID uint) ([]Document, error) {
	var docs []Document
	err := s.db.WithContext(ctx).
		Where("mission = ?", missionID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list documents for mission %d: %w", missionID, err)
	}
	return docs, nil
}

// Download streams the document content and its MIME type.
func (s *Service) Download(ctx context.Context, publicID uuid.UUID) (io.ReadCloser, string, error) {
	doc, err := s.get(ctx, publicID)
	if err != nil {
		return nil, "", err
	}
	return s.driver.Get(ctx, doc.Key)
}

// Delete removes the document record and its stored binary.
func (s *Service) Delete(ctx context.Context, publicID uuid.UUID) error {
	doc, err := s.get(ctx, publicID)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(doc).Error; err != nil {
		return fmt.Errorf("delete document record: %w", err)
	}
	if err := s.driver.Delete(ctx, doc.Key); err != nil {
		slog.WarnContext(ctx, "failed to delete stored document", "key", doc.Key, "error", err)
	}
	return nil
}

func (s *Service) get(ctx context.Context, publicID uuid.UUID) (*Document, error) {
	var doc Document
	err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document %s: %w", publicID, ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("get document %s: %w", publicID, err)
	}
	return &doc, nil
}
