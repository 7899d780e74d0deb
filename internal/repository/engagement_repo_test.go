package repository

import (
	"context"
	"testing"

	"arunika.id/aksipoin/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockedEngagementRepo(t *testing.T) (EngagementRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewEngagementRepository(db), mock
}

// The ledger insert must carry the conflict guard: without it an
// already-paid award aborts the surrounding Postgres transaction and the
// whole like or comment write is lost.
func TestCreatePointAwardInsertsWithConflictGuard(t *testing.T) {
	repo, mock := newMockedEngagementRepo(t)
	userID := uuid.New()
	submissionID := uuid.New()

	mock.ExpectQuery(`INSERT INTO "point_awards" .+ ON CONFLICT DO NOTHING RETURNING "id"`).
		WithArgs(userID, submissionID, model.AwardKindLike, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	created, err := repo.CreatePointAward(context.Background(), &model.PointAward{
		UserID:       userID,
		SubmissionID: submissionID,
		Kind:         model.AwardKindLike,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePointAwardReportsAlreadyPaid(t *testing.T) {
	repo, mock := newMockedEngagementRepo(t)
	userID := uuid.New()
	submissionID := uuid.New()

	// Conflict path: the guard swallows the row and nothing comes back.
	mock.ExpectQuery(`INSERT INTO "point_awards" .+ ON CONFLICT DO NOTHING RETURNING "id"`).
		WithArgs(userID, submissionID, model.AwardKindComment, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	created, err := repo.CreatePointAward(context.Background(), &model.PointAward{
		UserID:       userID,
		SubmissionID: submissionID,
		Kind:         model.AwardKindComment,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}
