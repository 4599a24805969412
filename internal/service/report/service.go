// Package report captures user reports. Capture only: nothing in-process
// acts on them, moderation happens elsewhere.
package report

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/auth"
	"github.com/emberapp/ember-backend/internal/db"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
	"github.com/emberapp/ember-backend/internal/repository"
)

type Service struct {
	appCtx  *app.AppContext
	users   *repository.UserRepository
	reports *repository.ReportRepository
}

func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:  appCtx,
		users:   repository.NewUserRepository(appCtx.DB),
		reports: repository.NewReportRepository(appCtx.DB),
	}
}

// Submit stores a report against another user.
func (s *Service) Submit(ctx context.Context, reporterID, reportedID uint64, reason string) (*db.Report, error) {
	if reporterID == reportedID {
		return nil, svcErr.InvalidInput("cannot report yourself")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, svcErr.InvalidInput("reason must not be empty")
	}

	exists, err := s.users.Exists(ctx, reportedID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !exists {
		return nil, svcErr.NotFound("user not found")
	}

	rep, err := s.reports.Create(ctx, reporterID, reportedID, reason)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	s.appCtx.Logger.Info("report captured", "reporter_id", reporterID, "reported_id", reportedID)
	return rep, nil
}

type reportInput struct {
	ReportedID string `json:"reported_id" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

func (s *Service) handleSubmit(c *gin.Context) {
	var input reportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		svcErr.Respond(c, svcErr.InvalidInput(err.Error()))
		return
	}

	reportedID, err := strconv.ParseUint(input.ReportedID, 10, 64)
	if err != nil || reportedID == 0 {
		svcErr.Respond(c, svcErr.InvalidInput("reported_id must be a valid user id"))
		return
	}

	if _, err := s.Submit(c.Request.Context(), auth.UserID(c), reportedID, input.Reason); err != nil {
		svcErr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// Registrar ties the report service into the HTTP server.
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

func (r *Registrar) Register(_, protected *gin.RouterGroup) {
	service := NewService(r.appCtx)
	protected.POST("/reports", service.handleSubmit)
}
