package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	notifService "praktikly_backend/internals/features/notifications/service"
	"praktikly_backend/internals/features/workflow/onboardings/model"
	"praktikly_backend/internals/helpers/errs"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return New(db, notifService.NewNotifier(db)), mock
}

func onboardingRow(obID, candidateID, companyID uuid.UUID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"onboarding_id", "onboarding_application_id", "onboarding_candidate_id",
		"onboarding_company_id", "onboarding_status", "onboarding_documents",
	}).AddRow(obID, uuid.New(), candidateID, companyID, status, []byte(`[]`))
}

func TestCompleteFromInProgress(t *testing.T) {
	svc, mock := newTestService(t)

	obID := uuid.New()
	candidateID := uuid.New()
	companyID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "onboardings"`).
		WithArgs(obID, 1).
		WillReturnRows(onboardingRow(obID, candidateID, companyID, model.StatusInProgress))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "onboardings"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	// exactly one completion notification
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"notification_id"}).AddRow(uuid.New()))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT "user_email" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_email"}))

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)
	ob, err := svc.Complete(context.Background(), obID, companyID, CompleteInput{
		StartDate:       &start,
		EndDate:         &end,
		WorkspaceAccess: true,
		EmailAccess:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, ob.OnboardingStatus)
	require.NotNil(t, ob.OnboardingCompletedAt)
	assert.True(t, ob.OnboardingWorkspaceAccess)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepeatCompleteIsInvalidStateWithoutSecondEmail(t *testing.T) {
	svc, mock := newTestService(t)

	obID := uuid.New()
	companyID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "onboardings"`).
		WithArgs(obID, 1).
		WillReturnRows(onboardingRow(obID, uuid.New(), companyID, model.StatusCompleted))

	_, err := svc.Complete(context.Background(), obID, companyID, CompleteInput{})
	assert.True(t, errs.Is(err, errs.CodeInvalidState), "second complete must fail, got %v", err)
	// no UPDATE and no notification insert: completion never happens twice
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteByWrongCompanyIsUnauthorized(t *testing.T) {
	svc, mock := newTestService(t)

	obID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "onboardings"`).
		WithArgs(obID, 1).
		WillReturnRows(onboardingRow(obID, uuid.New(), uuid.New(), model.StatusInProgress))

	_, err := svc.Complete(context.Background(), obID, uuid.New(), CompleteInput{})
	assert.True(t, errs.Is(err, errs.CodeUnauthorized), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
