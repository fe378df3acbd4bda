package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/repository"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
)

// DepartmentAll selects the college-wide display rotation.
const DepartmentAll = "all"

// Fallback durations used when a rotation item carries no stored duration.
const (
	fallbackNoticeDuration = 10
	fallbackImageDuration  = 10
	fallbackVideoDuration  = 30
)

// Display item kinds in rotation order.
const (
	DisplayKindNotice = "notice"
	DisplayKindImage  = "image"
	DisplayKindVideo  = "video"
	DisplayKindEvent  = "event"
	DisplayKindAd     = "ad"
)

type displayNoticeRepository interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.Notice, error)
}

type displayEventRepository interface {
	List(ctx context.Context, filter models.ContentFilter, order repository.EventOrder) ([]models.Event, error)
}

type displayMediaRepository interface {
	List(ctx context.Context, filter models.ContentFilter, contentType string) ([]models.MediaContent, error)
}

type displaySettingsRepository interface {
	FindByDepartment(ctx context.Context, department string) (*models.DepartmentSettings, error)
}

type adsLister interface {
	ListCollegeAds() []string
}

// DisplayItem is one slide in the TV rotation.
type DisplayItem struct {
	Kind     string `json:"kind"`
	ID       string `json:"id,omitempty"`
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	FilePath string `json:"file_path,omitempty"`
	Priority string `json:"priority,omitempty"`
	Duration int    `json:"duration"`
}

// DisplayView is the full TV payload for one department.
type DisplayView struct {
	Department string                    `json:"department"`
	Settings   models.DepartmentSettings `json:"settings"`
	Items      []DisplayItem             `json:"items"`
}

// DisplayService composes the TV rotation: notices oldest first, then
// images, videos, events and college ads, each with a resolved duration.
type DisplayService struct {
	notices  displayNoticeRepository
	events   displayEventRepository
	media    displayMediaRepository
	settings displaySettingsRepository
	ads      adsLister
	logger   *zap.Logger
}

// NewDisplayService constructs a DisplayService.
func NewDisplayService(notices displayNoticeRepository, events displayEventRepository, media displayMediaRepository, settings displaySettingsRepository, ads adsLister, logger *zap.Logger) *DisplayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DisplayService{notices: notices, events: events, media: media, settings: settings, ads: ads, logger: logger}
}

// Settings resolves a department's display settings, falling back to the
// defaults for "all" or a department without a row.
func (s *DisplayService) Settings(ctx context.Context, department string) (*models.DepartmentSettings, error) {
	defaults := &models.DepartmentSettings{
		Department:    department,
		TextDuration:  models.DefaultTextDuration,
		PhotoDuration: models.DefaultPhotoDuration,
		VideoDuration: models.DefaultVideoDuration,
	}
	if department == DepartmentAll || department == "" {
		return defaults, nil
	}
	settings, err := s.settings.FindByDepartment(ctx, department)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return defaults, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load display settings")
	}
	return settings, nil
}

// Board builds the rotation for one department's TV, or the college-wide
// rotation for "all".
func (s *DisplayService) Board(ctx context.Context, department string) (*DisplayView, error) {
	settings, err := s.Settings(ctx, department)
	if err != nil {
		return nil, err
	}

	filter := models.ContentFilter{ActiveOnly: true}
	if department != DepartmentAll && department != "" {
		filter.Scoped = true
		filter.Department = department
	}

	noticeFilter := filter
	noticeFilter.OldestFirst = true
	notices, err := s.notices.List(ctx, noticeFilter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load display notices")
	}
	images, err := s.media.List(ctx, filter, models.MediaImage)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load display images")
	}
	videos, err := s.media.List(ctx, filter, models.MediaVideo)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load display videos")
	}
	events, err := s.events.List(ctx, filter, repository.EventOrderCreatedAsc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load display events")
	}

	view := &DisplayView{Department: department, Settings: *settings}
	for _, notice := range notices {
		view.Items = append(view.Items, DisplayItem{
			Kind:     DisplayKindNotice,
			ID:       notice.ID,
			Title:    notice.Title,
			Content:  notice.Content,
			Priority: notice.Priority,
			Duration: durationOr(notice.DisplayDuration, fallbackNoticeDuration),
		})
	}
	for _, image := range images {
		view.Items = append(view.Items, DisplayItem{
			Kind:     DisplayKindImage,
			ID:       image.ID,
			Title:    derefStr(image.Title),
			FilePath: image.FilePath,
			Duration: durationOr(image.DisplayDuration, fallbackImageDuration),
		})
	}
	for _, video := range videos {
		view.Items = append(view.Items, DisplayItem{
			Kind:     DisplayKindVideo,
			ID:       video.ID,
			Title:    derefStr(video.Title),
			FilePath: video.FilePath,
			Duration: durationOr(video.DisplayDuration, fallbackVideoDuration),
		})
	}
	for _, event := range events {
		view.Items = append(view.Items, DisplayItem{
			Kind:     DisplayKindEvent,
			ID:       event.ID,
			Title:    event.Title,
			Content:  event.Description,
			FilePath: derefStr(event.Image),
			Duration: durationOr(event.DisplayDuration, fallbackNoticeDuration),
		})
	}
	for _, ad := range s.ads.ListCollegeAds() {
		view.Items = append(view.Items, DisplayItem{
			Kind:     DisplayKindAd,
			FilePath: ad,
			Duration: durationOr(settings.VideoDuration, fallbackVideoDuration),
		})
	}
	return view, nil
}

func durationOr(stored, fallback int) int {
	if stored > 0 {
		return stored
	}
	return fallback
}

func derefStr(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
