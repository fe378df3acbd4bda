package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/realtime"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/storage"
)

type noticeRepository interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.Notice, error)
	FindByID(ctx context.Context, id string) (*models.Notice, error)
	Create(ctx context.Context, notice *models.Notice) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

// NoticeService owns the notice lifecycle: creation with optional
// attachment, scoped listing, soft delete and the view counter.
type NoticeService struct {
	notices   noticeRepository
	uploads   uploadStore
	publisher realtime.Publisher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoticeService constructs a NoticeService.
func NewNoticeService(notices noticeRepository, uploads uploadStore, publisher realtime.Publisher, validate *validator.Validate, logger *zap.Logger) *NoticeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	return &NoticeService{notices: notices, uploads: uploads, publisher: publisher, validator: validate, logger: logger}
}

// List returns notices visible to the actor. HODs see their department's
// and shared notices; the principal sees everything.
func (s *NoticeService) List(ctx context.Context, actor models.AuthContext, activeOnly bool) ([]models.Notice, error) {
	filter := models.ContentFilter{ActiveOnly: activeOnly}
	if !actor.Principal() {
		filter.Scoped = true
		filter.Department = actor.Dept()
	}
	notices, err := s.notices.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notices")
	}
	return notices, nil
}

// PublicList returns active notices for one department's public board, or
// every department's notices for "all".
func (s *NoticeService) PublicList(ctx context.Context, department string) ([]models.Notice, error) {
	filter := models.ContentFilter{ActiveOnly: true}
	if department != DepartmentAll && department != "" {
		filter.Scoped = true
		filter.Department = department
	}
	notices, err := s.notices.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notices")
	}
	return notices, nil
}

// Create posts a notice for the actor's department. Principal notices are
// always shared with every department.
func (s *NoticeService) Create(ctx context.Context, actor models.AuthContext, req models.CreateNoticeRequest, attachment *Upload) (*models.Notice, error) {
	if !actor.Role.Admin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can post notices")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload")
	}
	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "expires_at must be YYYY-MM-DD")
		}
		expiresAt = &parsed
	}

	rel, err := saveUpload(s.uploads, storage.FolderNotices, attachment)
	if err != nil {
		return nil, err
	}

	notice := &models.Notice{
		Title:             req.Title,
		Content:           req.Content,
		Priority:          req.Priority,
		CreatedBy:         &actor.UserID,
		ExpiresAt:         expiresAt,
		DisplayDuration:   req.DisplayDuration,
		ForAllDepartments: req.ForAllDepartments,
	}
	if notice.Priority == "" {
		notice.Priority = models.PriorityNormal
	}
	if actor.Principal() {
		notice.ForAllDepartments = true
	} else {
		dept := actor.Dept()
		notice.Department = &dept
	}
	if rel != "" {
		fileType := storage.FileType(rel)
		notice.Attachment = &rel
		notice.AttachmentType = &fileType
	}

	if err := s.notices.Create(ctx, notice); err != nil {
		if rel != "" {
			if rmErr := s.uploads.Remove(rel); rmErr != nil {
				s.logger.Warn("failed to remove orphaned attachment", zap.Error(rmErr))
			}
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notice")
	}

	s.publisher.Publish(realtime.ContentUpdate("notice", "created", notice.ID))
	return notice, nil
}

// Get fetches one notice and counts the visit. Every view increments.
func (s *NoticeService) Get(ctx context.Context, id string) (*models.Notice, error) {
	notice, err := s.notices.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notice")
	}
	if err := s.notices.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("failed to increment notice views", zap.String("id", id), zap.Error(err))
	} else {
		notice.Views++
	}
	return notice, nil
}

// Find fetches one notice for staff review. HODs may only open shared
// notices or their own department's.
func (s *NoticeService) Find(ctx context.Context, actor models.AuthContext, id string) (*models.Notice, error) {
	if !actor.Role.Admin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can open this notice")
	}
	notice, err := s.notices.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notice")
	}
	shared := notice.ForAllDepartments || notice.Department == nil
	if !actor.Principal() && !shared && !ownsContent(actor, notice.Department, notice.CreatedBy) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "notice belongs to another department")
	}
	return notice, nil
}

// Delete soft-deletes a notice the actor is allowed to manage.
func (s *NoticeService) Delete(ctx context.Context, actor models.AuthContext, id string) error {
	if !actor.Role.Admin() {
		return appErrors.Clone(appErrors.ErrForbidden, "only staff can delete notices")
	}
	notice, err := s.notices.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notice")
	}
	if !actor.Principal() && !ownsContent(actor, notice.Department, notice.CreatedBy) {
		return appErrors.Clone(appErrors.ErrForbidden, "notice belongs to another department")
	}
	if err := s.notices.SoftDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete notice")
	}
	s.publisher.Publish(realtime.ContentUpdate("notice", "deleted", id))
	return nil
}

// ownsContent reports whether a non-principal actor may manage content with
// the given department and author columns.
func ownsContent(actor models.AuthContext, department, createdBy *string) bool {
	if createdBy != nil && *createdBy == actor.UserID {
		return true
	}
	return department != nil && *department == actor.Dept()
}
