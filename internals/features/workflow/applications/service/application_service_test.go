package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"praktikly_backend/internals/constants"
	notifService "praktikly_backend/internals/features/notifications/service"
	"praktikly_backend/internals/features/workflow/applications/model"
	"praktikly_backend/internals/helpers/errs"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return New(db, notifService.NewNotifier(db)), mock
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	svc, mock := newTestService(t)

	internshipID := uuid.New()
	candidateID := uuid.New()
	companyID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "internships"`).
		WithArgs(internshipID, 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"internship_id", "internship_company_id", "internship_title", "internship_status",
		}).AddRow(internshipID, companyID, "Backend intern", "published"))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Submit(context.Background(), SubmitInput{
		InternshipID: internshipID,
		CandidateID:  candidateID,
	})
	assert.True(t, errs.Is(err, errs.CodeDuplicateEntity), "second submit must be a duplicate, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRejectsUnpublishedPosting(t *testing.T) {
	svc, mock := newTestService(t)

	internshipID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "internships"`).
		WithArgs(internshipID, 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"internship_id", "internship_company_id", "internship_title", "internship_status",
		}).AddRow(internshipID, uuid.New(), "Backend intern", "draft"))

	_, err := svc.Submit(context.Background(), SubmitInput{
		InternshipID: internshipID,
		CandidateID:  uuid.New(),
	})
	assert.True(t, errs.Is(err, errs.CodeValidation), "draft posting must not accept applications, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionIllegalIsRejectedWithoutWrites(t *testing.T) {
	svc, mock := newTestService(t)

	appID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WithArgs(appID, 1).
		WillReturnRows(applicationRow(appID, uuid.New(), uuid.New(), model.StatusInterviewed))

	// the review chain never moves backwards
	_, err := svc.Transition(context.Background(), appID, constants.RoleCompany, model.StatusReviewed, "")
	assert.True(t, errs.Is(err, errs.CodeIllegalTransition), "got %v", err)
	// no UPDATE and no notification insert may follow an illegal transition
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A company can offer straight from pending; the candidate's acceptance then
// closes the application with exactly one audit entry per step and no
// onboarding write on this path.
func TestDirectOfferThenAcceptScenario(t *testing.T) {
	svc, mock := newTestService(t)

	appID := uuid.New()
	candidateID := uuid.New()
	companyID := uuid.New()

	// step 1: offered straight from pending
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WithArgs(appID, 1).
		WillReturnRows(applicationRow(appID, candidateID, companyID, model.StatusPending))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectNotification(mock)

	app, err := svc.Transition(context.Background(), appID, constants.RoleCompany, model.StatusOffered, "we would like you on board")
	require.NoError(t, err)
	assert.Equal(t, model.StatusOffered, app.ApplicationStatus)

	offer, err := app.Offer()
	require.NoError(t, err)
	require.NotNil(t, offer, "reaching offered must populate offerDetails")
	assert.NotNil(t, offer.SentAt)
	assert.Nil(t, offer.RespondedAt)

	hist, err := app.History()
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, model.StatusOffered, hist[0].Status)
	assert.Equal(t, constants.RoleCompany, hist[0].Actor)

	// step 2: candidate accepts; the second read returns the offered row
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WithArgs(appID, 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"application_id", "application_internship_id", "application_candidate_id",
			"application_company_id", "application_status", "application_status_history",
			"application_offer_details",
		}).AddRow(appID, uuid.New(), candidateID, companyID, model.StatusOffered,
			[]byte(app.ApplicationStatusHistory), []byte(app.ApplicationOfferDetails)))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectNotification(mock)

	accepted, err := svc.RespondToOffer(context.Background(), appID, candidateID, true, "thrilled to accept")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, accepted.ApplicationStatus)

	offer, err = accepted.Offer()
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.NotNil(t, offer.RespondedAt)

	hist, err = accepted.History()
	require.NoError(t, err)
	require.Len(t, hist, 2, "each step appends exactly one audit entry")
	assert.Equal(t, model.StatusAccepted, hist[1].Status)
	assert.Equal(t, constants.RoleCandidate, hist[1].Actor)

	// no onboarding insert on the direct-offer path
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawFromTerminalIsInvalidState(t *testing.T) {
	svc, mock := newTestService(t)

	appID := uuid.New()
	candidateID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WithArgs(appID, 1).
		WillReturnRows(applicationRow(appID, candidateID, uuid.New(), model.StatusWithdrawn))

	_, err := svc.Withdraw(context.Background(), appID, candidateID)
	assert.True(t, errs.Is(err, errs.CodeInvalidState), "second withdraw must fail, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdrawByStrangerIsUnauthorized(t *testing.T) {
	svc, mock := newTestService(t)

	appID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WithArgs(appID, 1).
		WillReturnRows(applicationRow(appID, uuid.New(), uuid.New(), model.StatusShortlisted))

	_, err := svc.Withdraw(context.Background(), appID, uuid.New())
	assert.True(t, errs.Is(err, errs.CodeUnauthorized), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRespondToOfferWithoutOffer(t *testing.T) {
	svc, mock := newTestService(t)

	appID := uuid.New()
	candidateID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WithArgs(appID, 1).
		WillReturnRows(applicationRow(appID, candidateID, uuid.New(), model.StatusShortlisted))

	_, err := svc.RespondToOffer(context.Background(), appID, candidateID, true, "")
	assert.True(t, errs.Is(err, errs.CodeIllegalTransition), "accept without an offer must fail, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMessageByStrangerIsUnauthorized(t *testing.T) {
	svc, mock := newTestService(t)

	appID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WithArgs(appID, 1).
		WillReturnRows(applicationRow(appID, uuid.New(), uuid.New(), model.StatusShortlisted))

	_, err := svc.AddMessage(context.Background(), appID, uuid.New(), constants.RoleCandidate, "hello")
	assert.True(t, errs.Is(err, errs.CodeUnauthorized), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMessageAppendsAndNotifies(t *testing.T) {
	svc, mock := newTestService(t)

	appID := uuid.New()
	candidateID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WithArgs(appID, 1).
		WillReturnRows(applicationRow(appID, candidateID, uuid.New(), model.StatusShortlisted))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectNotification(mock)

	app, err := svc.AddMessage(context.Background(), appID, candidateID, constants.RoleCandidate, "when could I start?")
	require.NoError(t, err)

	var msgs []model.Message
	require.NoError(t, json.Unmarshal(app.ApplicationMessages, &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, constants.RoleCandidate, msgs[0].SenderRole)
	assert.Equal(t, "when could I start?", msgs[0].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMessageRejectsEmptyBody(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.AddMessage(context.Background(), uuid.New(), uuid.New(), constants.RoleCandidate, "   ")
	assert.True(t, errs.Is(err, errs.CodeValidation), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// expectNotification covers one Notifier.Notify call: the feed insert plus the
// email-address lookup (returning no row, so no mail goes out).
func expectNotification(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"notification_id"}).AddRow(uuid.New()))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT "user_email" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"user_email"}))
}

func applicationRow(appID, candidateID, companyID uuid.UUID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"application_id", "application_internship_id", "application_candidate_id",
		"application_company_id", "application_status", "application_status_history",
	}).AddRow(appID, uuid.New(), candidateID, companyID, status, []byte(`[]`))
}
