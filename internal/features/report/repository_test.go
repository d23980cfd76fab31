package report

import (
	"context"
	"testing"
	"time"

	"wellness-analytics/internal/config"
	"wellness-analytics/internal/database"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLRepo(t *testing.T, dialect database.Dialect) (sqlmock.Sqlmock, *ReportRepositoryImpl) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewSQLReportRepository(&database.SQLDB{DB: db, Dialect: dialect})
}

func TestCreatePostgresUsesReturning(t *testing.T) {
	mock, repo := newSQLRepo(t, database.Postgres{})

	mock.ExpectQuery("INSERT INTO reports (scope, metrics, generated_date) VALUES ($1, $2, $3) RETURNING report_id").
		WithArgs(ScopeOrg, "Goal Status", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"report_id"}).AddRow(int64(7)))

	report := &Report{Scope: ScopeOrg, Metrics: "Goal Status", GeneratedDate: mustDate("2026-03-14")}
	require.NoError(t, repo.Create(context.Background(), report))
	assert.Equal(t, int64(7), report.ReportID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMySQLUsesLastInsertID(t *testing.T) {
	mock, repo := newSQLRepo(t, database.MySQL{})

	mock.ExpectExec("INSERT INTO reports (scope, metrics, generated_date) VALUES (?, ?, ?)").
		WithArgs(ScopeManager, "Manager Team Size", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))

	report := &Report{Scope: ScopeManager, Metrics: "Manager Team Size", GeneratedDate: mustDate("2026-03-14")}
	require.NoError(t, repo.Create(context.Background(), report))
	assert.Equal(t, int64(12), report.ReportID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReport(t *testing.T) {
	mock, repo := newSQLRepo(t, database.Postgres{})

	rows := sqlmock.NewRows([]string{"report_id", "scope", "metrics", "generated_date"}).
		AddRow(int64(3), ScopeOrg, "Goal Status", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery("SELECT report_id, scope, metrics, generated_date FROM reports WHERE report_id = $1").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ReportID)
	assert.Equal(t, "Goal Status", got.Metrics)
	assert.Equal(t, "2026-03-01", got.GeneratedDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReportNoRows(t *testing.T) {
	mock, repo := newSQLRepo(t, database.MySQL{})

	mock.ExpectQuery("SELECT report_id, scope, metrics, generated_date FROM reports WHERE report_id = ?").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "scope", "metrics", "generated_date"}))

	_, err := repo.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestListReportsOrdered(t *testing.T) {
	mock, repo := newSQLRepo(t, database.MySQL{})

	rows := sqlmock.NewRows([]string{"report_id", "scope", "metrics", "generated_date"}).
		AddRow(int64(1), ScopeOrg, "Goal Status", []byte("2026-03-01")).
		AddRow(int64(2), ScopeManager, "Manager Team Size", []byte("2026-03-02"))
	mock.ExpectQuery("SELECT report_id, scope, metrics, generated_date FROM reports ORDER BY report_id").
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ReportID)
	assert.Equal(t, "2026-03-02", got[1].GeneratedDate.String())
}

func TestListReportsEmptySlice(t *testing.T) {
	mock, repo := newSQLRepo(t, database.Postgres{})

	mock.ExpectQuery("SELECT report_id, scope, metrics, generated_date FROM reports ORDER BY report_id").
		WillReturnRows(sqlmock.NewRows([]string{"report_id", "scope", "metrics", "generated_date"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUpdateNeverWritesDate(t *testing.T) {
	mock, repo := newSQLRepo(t, database.Postgres{})

	mock.ExpectExec("UPDATE reports SET scope = $1, metrics = $2 WHERE report_id = $3").
		WithArgs(ScopeManager, "Team Size", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &Report{ReportID: 4, Scope: ScopeManager, Metrics: "Team Size"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingIsNotAnError(t *testing.T) {
	mock, repo := newSQLRepo(t, database.Postgres{})

	mock.ExpectExec("DELETE FROM reports WHERE report_id = $1").
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 8))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewReportRepositorySelectsBackend(t *testing.T) {
	sqlDB := &database.SQLDB{Dialect: database.Postgres{}}

	repo, err := NewReportRepository(&config.Config{}, sqlDB, &database.MongodbDB{})
	require.NoError(t, err)
	assert.IsType(t, &ReportRepositoryImpl{}, repo)

	_, err = NewReportRepository(&config.Config{ReportStore: config.ReportStoreMongo}, sqlDB, &database.MongodbDB{})
	assert.Error(t, err)

	_, err = NewReportRepository(&config.Config{ReportStore: "redis"}, sqlDB, &database.MongodbDB{})
	assert.Error(t, err)
}
