package metrics

import (
	"context"
	"database/sql"

	"wellness-analytics/internal/database"
	"wellness-analytics/internal/features/series"
)

// Each source returns ordered (key, value) rows straight from the store;
// grouping and ordering are the query's business.

type ActivityRepository interface {
	ParticipationStatus(ctx context.Context) ([]series.Row, error)
	ParticipationByDepartment(ctx context.Context) ([]series.Row, error)
	ParticipationByProgram(ctx context.Context) ([]series.Row, error)
	ParticipationByCategory(ctx context.Context) ([]series.Row, error)
	MonthlyTrend(ctx context.Context) ([]series.Row, error)
	CompletionStatus(ctx context.Context) ([]series.Row, error)
}

type GoalRepository interface {
	EngagementByDepartment(ctx context.Context) ([]series.Row, error)
	GoalStatus(ctx context.Context) ([]series.Row, error)
}

type ChallengeRepository interface {
	ChallengeCompletion(ctx context.Context) ([]series.Row, error)
}

type UserRepository interface {
	ManagerTeamSize(ctx context.Context) ([]series.Row, error)
}

type ProgramRepository interface {
	ProgramStatusCount(ctx context.Context) ([]series.Row, error)
}

const (
	participationStatusQuery = `
		SELECT a.status, COUNT(a.activity_id)
		FROM activities a
		GROUP BY a.status
		ORDER BY a.status`

	participationByDepartmentQuery = `
		SELECT u.department, COUNT(DISTINCT a.user_id)
		FROM activities a
		JOIN users u ON u.user_id = a.user_id
		GROUP BY u.department
		ORDER BY u.department`

	participationByProgramQuery = `
		SELECT p.name, COUNT(DISTINCT a.user_id)
		FROM activities a
		JOIN programs p ON p.program_id = a.program_id
		GROUP BY p.name
		ORDER BY p.name`

	participationByCategoryQuery = `
		SELECT a.category, COUNT(a.activity_id)
		FROM activities a
		GROUP BY a.category
		ORDER BY a.category`

	monthlyTrendQuery = `
		SELECT EXTRACT(MONTH FROM a.activity_date), COUNT(a.activity_id)
		FROM activities a
		GROUP BY EXTRACT(MONTH FROM a.activity_date)
		ORDER BY 1`

	completionStatusQuery = `
		SELECT a.completion_status, COUNT(a.activity_id)
		FROM activities a
		GROUP BY a.completion_status
		ORDER BY a.completion_status`

	engagementByDepartmentQuery = `
		SELECT u.department, AVG(g.progress)
		FROM goals g
		JOIN users u ON u.user_id = g.user_id
		GROUP BY u.department
		ORDER BY u.department`

	goalStatusQuery = `
		SELECT g.status, COUNT(g.goal_id)
		FROM goals g
		GROUP BY g.status
		ORDER BY g.status`

	challengeCompletionQuery = `
		SELECT c.title, COUNT(cp.user_id)
		FROM challenges c
		LEFT JOIN challenge_participants cp
			ON cp.challenge_id = c.challenge_id AND cp.completed = TRUE
		GROUP BY c.challenge_id, c.title
		ORDER BY c.title`

	managerTeamSizeQuery = `
		SELECT m.full_name, COUNT(u.user_id)
		FROM users u
		JOIN users m ON m.user_id = u.manager_id
		GROUP BY m.user_id, m.full_name
		ORDER BY m.full_name`

	programStatusCountQuery = `
		SELECT p.status, COUNT(p.program_id)
		FROM programs p
		GROUP BY p.status
		ORDER BY p.status`
)

type ActivityRepositoryImpl struct {
	DB *sql.DB
}

func NewActivityRepository(db *database.SQLDB) ActivityRepository {
	return &ActivityRepositoryImpl{DB: db.DB}
}

func (r *ActivityRepositoryImpl) ParticipationStatus(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, participationStatusQuery)
}

func (r *ActivityRepositoryImpl) ParticipationByDepartment(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, participationByDepartmentQuery)
}

func (r *ActivityRepositoryImpl) ParticipationByProgram(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, participationByProgramQuery)
}

func (r *ActivityRepositoryImpl) ParticipationByCategory(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, participationByCategoryQuery)
}

func (r *ActivityRepositoryImpl) MonthlyTrend(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, monthlyTrendQuery)
}

func (r *ActivityRepositoryImpl) CompletionStatus(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, completionStatusQuery)
}

type GoalRepositoryImpl struct {
	DB *sql.DB
}

func NewGoalRepository(db *database.SQLDB) GoalRepository {
	return &GoalRepositoryImpl{DB: db.DB}
}

func (r *GoalRepositoryImpl) EngagementByDepartment(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, engagementByDepartmentQuery)
}

func (r *GoalRepositoryImpl) GoalStatus(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, goalStatusQuery)
}

type ChallengeRepositoryImpl struct {
	DB *sql.DB
}

func NewChallengeRepository(db *database.SQLDB) ChallengeRepository {
	return &ChallengeRepositoryImpl{DB: db.DB}
}

func (r *ChallengeRepositoryImpl) ChallengeCompletion(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, challengeCompletionQuery)
}

type UserRepositoryImpl struct {
	DB *sql.DB
}

func NewUserRepository(db *database.SQLDB) UserRepository {
	return &UserRepositoryImpl{DB: db.DB}
}

func (r *UserRepositoryImpl) ManagerTeamSize(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, managerTeamSizeQuery)
}

type ProgramRepositoryImpl struct {
	DB *sql.DB
}

func NewProgramRepository(db *database.SQLDB) ProgramRepository {
	return &ProgramRepositoryImpl{DB: db.DB}
}

func (r *ProgramRepositoryImpl) ProgramStatusCount(ctx context.Context) ([]series.Row, error) {
	return queryRows(ctx, r.DB, programStatusCountQuery)
}
