package handler

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/sincet/noticeboard-api/internal/middleware"
	"github.com/sincet/noticeboard-api/internal/models"
	"github.com/sincet/noticeboard-api/internal/service"
)

func authFromContext(c *gin.Context) *models.AuthContext {
	value, exists := c.Get(middleware.ContextAuthKey)
	if !exists {
		return nil
	}
	auth, ok := value.(*models.AuthContext)
	if !ok {
		return nil
	}
	return auth
}

// formUpload opens an optional multipart file and adapts it for the service
// layer. The second return value closes the file and must be called.
func formUpload(c *gin.Context, field string) (*service.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		// Missing file is fine; uploads are optional unless the service says otherwise.
		return nil, func() {}, nil
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*service.Upload, func(), error) {
	file, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	upload := &service.Upload{Filename: header.Filename, Reader: file}
	return upload, func() { file.Close() }, nil //nolint:errcheck
}
