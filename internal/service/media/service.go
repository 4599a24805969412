// Package media handles photo uploads. Files land on local disk and are
// served back under the upload base URL; clients may also hand over an
// already-hosted URL instead of a file.
package media

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/emberapp/ember-backend/internal/app"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

type Service struct {
	appCtx *app.AppContext
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx}
}

func (s *Service) handleUpload(c *gin.Context) {
	// pass-through: the client already hosts the image somewhere
	if url := strings.TrimSpace(c.PostForm("url")); url != "" {
		c.JSON(http.StatusOK, gin.H{"url": url})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		svcErr.Respond(c, svcErr.InvalidInput("provide url or file"))
		return
	}
	if file.Size > maxUploadBytes {
		svcErr.Respond(c, svcErr.InvalidInput("file too large"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		svcErr.Respond(c, svcErr.InvalidInput("unsupported file type"))
		return
	}

	cfg := s.appCtx.Config
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		svcErr.Respond(c, svcErr.Internal(err))
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(cfg.Upload.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		svcErr.Respond(c, svcErr.Internal(err))
		return
	}

	s.appCtx.Logger.Info("photo uploaded", "file", name, "bytes", file.Size)
	c.JSON(http.StatusOK, gin.H{"url": fmt.Sprintf("%s/%s", cfg.Upload.BaseURL, name)})
}

// Registrar ties the media service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(_, protected *gin.RouterGroup) {
	service := NewService(r.appCtx)
	protected.POST("/uploads", service.handleUpload)
}
