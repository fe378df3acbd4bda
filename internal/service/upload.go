package service

import (
	"fmt"
	"io"

	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/storage"
)

// Upload is an incoming multipart file handed down from a handler.
type Upload struct {
	Filename string
	Reader   io.Reader
}

type uploadStore interface {
	Allowed(filename string) bool
	Save(folder, originalName string, r io.Reader) (string, error)
	Remove(rel string) error
}

// saveUpload validates the extension against the allow-list and stores the
// file. A rejected extension is reported as a validation error, never
// silently dropped.
func saveUpload(store uploadStore, folder string, up *Upload) (string, error) {
	if up == nil || up.Filename == "" {
		return "", nil
	}
	if !store.Allowed(up.Filename) {
		msg := fmt.Sprintf("file type .%s is not allowed", storage.Extension(up.Filename))
		return "", appErrors.Clone(appErrors.ErrValidation, msg)
	}
	rel, err := store.Save(folder, up.Filename, up.Reader)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload")
	}
	return rel, nil
}
