package metrics

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"wellness-analytics/internal/features/series"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (sqlmock.Sqlmock, *ActivityRepositoryImpl, *GoalRepositoryImpl) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, &ActivityRepositoryImpl{DB: db}, &GoalRepositoryImpl{DB: db}
}

func TestParticipationStatusRows(t *testing.T) {
	mock, activity, _ := newMock(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("status").OfType("TEXT", ""),
		sqlmock.NewColumn("count").OfType("INT8", int64(0)),
	).
		AddRow("Active", int64(50)).
		AddRow(nil, int64(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT a.status, COUNT(a.activity_id)")).WillReturnRows(rows)

	got, err := activity.ParticipationStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []series.Row{
		{series.String("Active"), series.Int(50)},
		{series.Null(), series.Int(2)},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthlyTrendNumericMonths(t *testing.T) {
	mock, activity, _ := newMock(t)

	// PostgreSQL 14+ returns EXTRACT as NUMERIC text
	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("extract").OfType("NUMERIC", []byte{}),
		sqlmock.NewColumn("count").OfType("INT8", int64(0)),
	).
		AddRow([]byte("1"), int64(4)).
		AddRow(nil, int64(1))
	mock.ExpectQuery(regexp.QuoteMeta("EXTRACT(MONTH FROM a.activity_date)")).WillReturnRows(rows)

	got, err := activity.MonthlyTrend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []series.Row{
		{series.Float(1), series.Int(4)},
		{series.Null(), series.Int(1)},
	}, got)
}

func TestEngagementByDepartmentAverages(t *testing.T) {
	mock, _, goals := newMock(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("department").OfType("VARCHAR", ""),
		sqlmock.NewColumn("avg").OfType("NUMERIC", []byte{}),
	).
		AddRow("Sales", []byte("72.5000000000000000")).
		AddRow("IT", nil)
	mock.ExpectQuery(regexp.QuoteMeta("AVG(g.progress)")).WillReturnRows(rows)

	got, err := goals.EngagementByDepartment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []series.Row{
		{series.String("Sales"), series.Float(72.5)},
		{series.String("IT"), series.Null()},
	}, got)
}

func TestQueryErrorPropagates(t *testing.T) {
	mock, _, goals := newMock(t)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT g.status, COUNT(g.goal_id)")).WillReturnError(boom)

	_, err := goals.GoalStatus(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestEmptyResultIsEmptySlice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM programs p")).WillReturnRows(
		sqlmock.NewRowsWithColumnDefinition(
			sqlmock.NewColumn("status").OfType("TEXT", ""),
			sqlmock.NewColumn("count").OfType("INT8", int64(0)),
		),
	)

	got, err := (&ProgramRepositoryImpl{DB: db}).ProgramStatusCount(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
