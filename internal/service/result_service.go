package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/realtime"
	"github.com/sincet/noticeboard-api/pkg/config"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/storage"
)

type resultRepository interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.Result, error)
	FindByID(ctx context.Context, id string) (*models.Result, error)
	Create(ctx context.Context, result *models.Result) error
	SoftDelete(ctx context.Context, id string) error
}

// ResultService owns published results. Results always belong to exactly
// one department; the principal picks the department at creation time.
type ResultService struct {
	results   resultRepository
	uploads   uploadStore
	publisher realtime.Publisher
	validator *validator.Validate
	logger    *zap.Logger
	college   config.CollegeConfig
}

// NewResultService constructs a ResultService.
func NewResultService(results resultRepository, uploads uploadStore, publisher realtime.Publisher, validate *validator.Validate, logger *zap.Logger, college config.CollegeConfig) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	return &ResultService{results: results, uploads: uploads, publisher: publisher, validator: validate, logger: logger, college: college}
}

// List returns results visible to the actor, newest first.
func (s *ResultService) List(ctx context.Context, actor models.AuthContext, activeOnly bool) ([]models.Result, error) {
	filter := models.ContentFilter{ActiveOnly: activeOnly}
	if !actor.Principal() {
		filter.Scoped = true
		filter.Department = actor.Dept()
	}
	results, err := s.results.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list results")
	}
	return results, nil
}

// PublicList returns active results for one department, or every
// department's results for "all".
func (s *ResultService) PublicList(ctx context.Context, department string) ([]models.Result, error) {
	filter := models.ContentFilter{ActiveOnly: true}
	if department != DepartmentAll && department != "" {
		filter.Scoped = true
		filter.Department = department
	}
	results, err := s.results.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list results")
	}
	return results, nil
}

// Create publishes a result. department overrides the actor's own only for
// the principal; HODs always publish into their department.
func (s *ResultService) Create(ctx context.Context, actor models.AuthContext, department string, req models.CreateResultRequest, file *Upload) (*models.Result, error) {
	if !actor.Role.Admin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can publish results")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}

	if !actor.Principal() {
		department = actor.Dept()
	}
	if _, ok := s.college.DepartmentByCode(department); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown department")
	}
	if !yearKnown(s.college.Years, req.Year) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown year")
	}

	rel, err := saveUpload(s.uploads, storage.FolderResults, file)
	if err != nil {
		return nil, err
	}

	result := &models.Result{
		Title:       req.Title,
		Department:  department,
		Year:        req.Year,
		Semester:    req.Semester,
		Description: req.Description,
		CreatedBy:   &actor.UserID,
	}
	if rel != "" {
		result.FilePath = &rel
	}

	if err := s.results.Create(ctx, result); err != nil {
		if rel != "" {
			if rmErr := s.uploads.Remove(rel); rmErr != nil {
				s.logger.Warn("failed to remove orphaned result file", zap.Error(rmErr))
			}
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create result")
	}

	s.publisher.Publish(realtime.ContentUpdate("result", "created", result.ID))
	return result, nil
}

// Get fetches one result for the public detail page.
func (s *ResultService) Get(ctx context.Context, id string) (*models.Result, error) {
	result, err := s.results.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load result")
	}
	return result, nil
}

// Find fetches one result for staff review. HODs may only open their own
// department's results.
func (s *ResultService) Find(ctx context.Context, actor models.AuthContext, id string) (*models.Result, error) {
	if !actor.Role.Admin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can open this result")
	}
	result, err := s.results.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load result")
	}
	if !actor.Principal() && result.Department != actor.Dept() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "result belongs to another department")
	}
	return result, nil
}

// Delete soft-deletes a result the actor is allowed to manage.
func (s *ResultService) Delete(ctx context.Context, actor models.AuthContext, id string) error {
	if !actor.Role.Admin() {
		return appErrors.Clone(appErrors.ErrForbidden, "only staff can delete results")
	}
	result, err := s.results.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load result")
	}
	if !actor.Principal() && result.Department != actor.Dept() {
		return appErrors.Clone(appErrors.ErrForbidden, "result belongs to another department")
	}
	if err := s.results.SoftDelete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete result")
	}
	s.publisher.Publish(realtime.ContentUpdate("result", "deleted", id))
	return nil
}

func yearKnown(years []string, year string) bool {
	for _, y := range years {
		if y == year {
			return true
		}
	}
	return false
}
