package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/realtime"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/storage"
)

type mediaRepository interface {
	List(ctx context.Context, filter models.ContentFilter, contentType string) ([]models.MediaContent, error)
	FindByID(ctx context.Context, id string) (*models.MediaContent, error)
	Create(ctx context.Context, media *models.MediaContent) error
	SoftDelete(ctx context.Context, id string) error
}

// MediaService owns display media (images and videos cycled on TVs).
type MediaService struct {
	media     mediaRepository
	uploads   uploadStore
	publisher realtime.Publisher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMediaService constructs a MediaService.
func NewMediaService(media mediaRepository, uploads uploadStore, publisher realtime.Publisher, validate *validator.Validate, logger *zap.Logger) *MediaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	return &MediaService{media: media, uploads: uploads, publisher: publisher, validator: validate, logger: logger}
}

// List returns media visible to the actor in display order.
func (s *MediaService) List(ctx context.Context, actor models.AuthContext, activeOnly bool) ([]models.MediaContent, error) {
	filter := models.ContentFilter{ActiveOnly: activeOnly}
	if !actor.Principal() {
		filter.Scoped = true
		filter.Department = actor.Dept()
	}
	media, err := s.media.List(ctx, filter, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list media")
	}
	return media, nil
}

// PublicList returns active media for one department's display, or every
// department's media for "all".
func (s *MediaService) PublicList(ctx context.Context, department, contentType string) ([]models.MediaContent, error) {
	filter := models.ContentFilter{ActiveOnly: true}
	if department != DepartmentAll && department != "" {
		filter.Scoped = true
		filter.Department = department
	}
	media, err := s.media.List(ctx, filter, contentType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list media")
	}
	return media, nil
}

// Create stores an uploaded image or video. The file's actual type must
// match the declared content type.
func (s *MediaService) Create(ctx context.Context, actor models.AuthContext, req models.CreateMediaRequest, file *Upload) (*models.MediaContent, error) {
	if !actor.Role.Admin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can upload media")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid media payload")
	}
	if file == nil || file.Filename == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "media file is required")
	}
	if storage.FileType(file.Filename) != req.ContentType {
		msg := fmt.Sprintf("file does not look like a %s", req.ContentType)
		return nil, appErrors.Clone(appErrors.ErrValidation, msg)
	}

	folder := storage.FolderMediaImages
	if req.ContentType == models.MediaVideo {
		folder = storage.FolderMediaVideos
	}
	rel, err := saveUpload(s.uploads, folder, file)
	if err != nil {
		return nil, err
	}

	media := &models.MediaContent{
		ContentType:     req.ContentType,
		FilePath:        rel,
		Title:           req.Title,
		DisplayOrder:    req.DisplayOrder,
		DisplayDuration: req.DisplayDuration,
	}
	if !actor.Principal() {
		dept := actor.Dept()
		media.Department = &dept
	}

	if err := s.media.Create(ctx, media); err != nil {
		if rmErr := s.uploads.Remove(rel); rmErr != nil {
			s.logger.Warn("failed to remove orphaned media file", zap.Error(rmErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create media")
	}

	s.publisher.Publish(realtime.ContentUpdate("media", "created", media.ID))
	return media, nil
}

// Delete soft-deletes a media item the actor is allowed to manage.
func (s *MediaService) Delete(ctx context.Context, actor models.AuthContext, id string) error {
	if !actor.Role.Admin() {
		return appErrors.Clone(appErrors.ErrForbidden, "only staff can delete media")
	}
	media, err := s.media.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "media not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load media")
	}
	if !actor.Principal() && !ownsContent(actor, media.Department, nil) {
		return appErrors.Clone(appErrors.ErrForbidden, "media belongs to another department")
	}
	if err := s.media.SoftDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete media")
	}
	s.publisher.Publish(realtime.ContentUpdate("media", "deleted", id))
	return nil
}
