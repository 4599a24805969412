package report_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/emberapp/ember-backend/internal/app"
	"github.com/emberapp/ember-backend/internal/config"
	"github.com/emberapp/ember-backend/internal/db"
	svcErr "github.com/emberapp/ember-backend/internal/errors"
	"github.com/emberapp/ember-backend/internal/service/report"
)

func setupService(t *testing.T) *report.Service {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))

	users := []db.User{
		{ID: 1, Email: "a@test.com", PasswordHash: "x"},
		{ID: 2, Email: "b@test.com", PasswordHash: "x"},
	}
	require.NoError(t, dbase.Create(&users).Error)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := app.New(&config.Config{}, dbase, nil, logger)
	return report.NewService(appCtx)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	rep, err := svc.Submit(ctx, 1, 2, "inappropriate photos")
	require.NoError(t, err)
	assert.NotZero(t, rep.ID)
	assert.Equal(t, uint64(1), rep.ReporterID)
	assert.Equal(t, uint64(2), rep.ReportedID)
}

func TestSubmitRejections(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	_, err := svc.Submit(ctx, 1, 1, "reporting myself")
	require.Error(t, err)
	assert.Equal(t, svcErr.KindInvalidInput, svcErr.KindOf(err))

	_, err = svc.Submit(ctx, 1, 2, "   ")
	require.Error(t, err)
	assert.Equal(t, svcErr.KindInvalidInput, svcErr.KindOf(err))

	_, err = svc.Submit(ctx, 1, 999, "ghost account")
	require.Error(t, err)
	assert.Equal(t, svcErr.KindNotFound, svcErr.KindOf(err))
}
