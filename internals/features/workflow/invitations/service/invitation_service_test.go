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
	"praktikly_backend/internals/features/workflow/invitations/model"
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

func invitationRow(invID, candidateID, companyID uuid.UUID, status string, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"invitation_id", "invitation_internship_id", "invitation_candidate_id",
		"invitation_company_id", "invitation_status", "invitation_expires_at",
	}).AddRow(invID, uuid.New(), candidateID, companyID, status, expiresAt)
}

func TestRespondOnExpiredInvitationWritesBackAndRejects(t *testing.T) {
	svc, mock := newTestService(t)

	invID := uuid.New()
	candidateID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "invitations"`).
		WithArgs(invID, 1).
		WillReturnRows(invitationRow(invID, candidateID, uuid.New(),
			model.StatusPending, time.Now().Add(-time.Hour)))

	// corrective write-back, guarded so it never clobbers a real answer
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invitations" SET "invitation_status"`).
		WithArgs(model.StatusExpired, sqlmock.AnyArg(), invID, model.StatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, interview, err := svc.Respond(context.Background(), invID, candidateID, true, "")
	assert.True(t, errs.Is(err, errs.CodeInvalidState), "got %v", err)
	assert.Nil(t, interview, "an expired invitation must not seed an interview")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondOnAnsweredInvitationIsInvalidState(t *testing.T) {
	svc, mock := newTestService(t)

	invID := uuid.New()
	candidateID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "invitations"`).
		WithArgs(invID, 1).
		WillReturnRows(invitationRow(invID, candidateID, uuid.New(),
			model.StatusAccepted, time.Now().Add(time.Hour)))

	_, _, err := svc.Respond(context.Background(), invID, candidateID, false, "changed my mind")
	assert.True(t, errs.Is(err, errs.CodeInvalidState), "got %v", err)
	// the stored answer stays untouched: no writes may follow
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondByStrangerIsUnauthorized(t *testing.T) {
	svc, mock := newTestService(t)

	invID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "invitations"`).
		WithArgs(invID, 1).
		WillReturnRows(invitationRow(invID, uuid.New(), uuid.New(),
			model.StatusPending, time.Now().Add(time.Hour)))

	_, _, err := svc.Respond(context.Background(), invID, uuid.New(), true, "")
	assert.True(t, errs.Is(err, errs.CodeUnauthorized), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteRejectsDuplicate(t *testing.T) {
	svc, mock := newTestService(t)

	internshipID := uuid.New()
	companyID := uuid.New()
	candidateID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "internships"`).
		WithArgs(internshipID, 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"internship_id", "internship_company_id", "internship_title", "internship_status",
		}).AddRow(internshipID, companyID, "Frontend intern", "published"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "invitations"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Invite(context.Background(), InviteInput{
		InternshipID: internshipID,
		CandidateID:  candidateID,
		CompanyID:    companyID,
	})
	assert.True(t, errs.Is(err, errs.CodeDuplicateEntity), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteOnForeignPostingIsUnauthorized(t *testing.T) {
	svc, mock := newTestService(t)

	internshipID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "internships"`).
		WithArgs(internshipID, 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"internship_id", "internship_company_id", "internship_title", "internship_status",
		}).AddRow(internshipID, uuid.New(), "Frontend intern", "published"))

	_, err := svc.Invite(context.Background(), InviteInput{
		InternshipID: internshipID,
		CandidateID:  uuid.New(),
		CompanyID:    uuid.New(),
	})
	assert.True(t, errs.Is(err, errs.CodeUnauthorized), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkExpiredBatchReportsAffectedRows(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "invitations" SET "invitation_status"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	n, err := MarkExpiredBatch(svc.DB)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
