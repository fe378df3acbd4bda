package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Upload folders, one per content kind.
const (
	FolderNotices     = "notices"
	FolderEvents      = "events"
	FolderResults     = "results"
	FolderMediaImages = "media/images"
	FolderMediaVideos = "media/videos"
	FolderCollegeAds  = "college_ads"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadStore persists uploaded attachments on disk under a base directory,
// partitioned by content kind. Filenames are timestamp-prefixed to avoid
// collisions between uploads that share a name.
type UploadStore struct {
	baseDir string
	allowed map[string]struct{}
}

// NewUploadStore ensures the per-kind folders exist and returns a handle.
func NewUploadStore(baseDir string, allowedExtensions []string) (*UploadStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	for _, folder := range []string{FolderNotices, FolderEvents, FolderResults, FolderMediaImages, FolderMediaVideos, FolderCollegeAds} {
		if err := os.MkdirAll(filepath.Join(baseDir, folder), 0o755); err != nil {
			return nil, fmt.Errorf("create upload directory: %w", err)
		}
	}
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &UploadStore{baseDir: baseDir, allowed: allowed}, nil
}

// Allowed reports whether the filename's extension is on the allow-list.
func (s *UploadStore) Allowed(filename string) bool {
	ext := Extension(filename)
	if ext == "" {
		return false
	}
	_, ok := s.allowed[ext]
	return ok
}

// Save streams the upload into the kind folder and returns the stored
// relative path.
func (s *UploadStore) Save(folder, originalName string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102150405"), sanitize(originalName))
	rel := filepath.ToSlash(filepath.Join(folder, name))
	path := filepath.Join(s.baseDir, folder, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return rel, nil
}

// Remove deletes a stored upload if present. Soft-deleted content keeps its
// file, so this only runs when a failed create needs cleanup.
func (s *UploadStore) Remove(rel string) error {
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// ListCollegeAds returns the relative paths of ad videos in the ads folder.
func (s *UploadStore) ListCollegeAds() []string {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, FolderCollegeAds))
	if err != nil {
		return nil
	}
	ads := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch Extension(entry.Name()) {
		case "mp4", "webm", "ogg":
			ads = append(ads, filepath.ToSlash(filepath.Join(FolderCollegeAds, entry.Name())))
		}
	}
	return ads
}

// Path exposes the absolute path for a stored relative path.
func (s *UploadStore) Path(rel string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(rel))
}

// Extension returns the lower-cased extension without the leading dot.
func Extension(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.ToLower(ext)
}

// FileType classifies a filename by extension for display purposes.
func FileType(filename string) string {
	switch Extension(filename) {
	case "png", "jpg", "jpeg", "gif":
		return "image"
	case "mp4", "webm", "ogg":
		return "video"
	case "mp3", "wav":
		return "audio"
	case "pdf":
		return "pdf"
	default:
		return "document"
	}
}

func sanitize(name string) string {
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}

// ExportStore persists generated export files under a base directory.
type ExportStore struct {
	baseDir string
}

// NewExportStore ensures the base directory exists and returns a handle.
func NewExportStore(baseDir string) (*ExportStore, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &ExportStore{baseDir: baseDir}, nil
}

// Save writes the given bytes to the provided relative path under the base dir.
func (s *ExportStore) Save(filename string, data []byte) (string, error) {
	path := s.resolve(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return filename, nil
}

// Open returns a read-only handle for the stored file.
func (s *ExportStore) Open(filename string) (*os.File, error) {
	file, err := os.Open(s.resolve(filename))
	if err != nil {
		return nil, fmt.Errorf("open export file: %w", err)
	}
	return file, nil
}

// CleanupOlderThan removes export files older than the provided TTL.
func (s *ExportStore) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	err := filepath.WalkDir(s.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			rel = path
		}
		deleted = append(deleted, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup exports: %w", err)
	}
	return deleted, nil
}

// Path exposes the underlying absolute path.
func (s *ExportStore) Path(filename string) string {
	return s.resolve(filename)
}

func (s *ExportStore) resolve(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.baseDir, filename)
}
