package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wellness-analytics/internal/config"
	"wellness-analytics/internal/database"
)

type ReportRepository interface {
	// Create inserts the report and sets its ReportID.
	Create(ctx context.Context, report *Report) error
	// Get returns ErrReportNotFound when no report has the id.
	Get(ctx context.Context, id int64) (*Report, error)
	List(ctx context.Context) ([]Report, error)
	// Update saves scope and metrics. GeneratedDate is never written.
	Update(ctx context.Context, report *Report) error
	// Delete removes the report; a missing id is not an error.
	Delete(ctx context.Context, id int64) error
}

// NewReportRepository picks the backend named by REPORT_STORE.
func NewReportRepository(cfg *config.Config, sqlDB *database.SQLDB, mongoDB *database.MongodbDB) (ReportRepository, error) {
	switch cfg.ReportStore {
	case config.ReportStoreSQL, "":
		return NewSQLReportRepository(sqlDB), nil
	case config.ReportStoreMongo:
		if mongoDB == nil || mongoDB.DB == nil {
			return nil, fmt.Errorf("mongo report store selected but MongoDB is not configured")
		}
		return NewMongoReportRepository(mongoDB), nil
	default:
		return nil, fmt.Errorf("unsupported REPORT_STORE %q", cfg.ReportStore)
	}
}

type ReportRepositoryImpl struct {
	DB      *sql.DB
	Dialect database.Dialect
}

func NewSQLReportRepository(db *database.SQLDB) *ReportRepositoryImpl {
	return &ReportRepositoryImpl{DB: db.DB, Dialect: db.Dialect}
}

const reportColumns = "report_id, scope, metrics, generated_date"

func (r *ReportRepositoryImpl) Create(ctx context.Context, report *Report) error {
	query := r.Dialect.Rebind("INSERT INTO reports (scope, metrics, generated_date) VALUES (?, ?, ?)")

	if r.Dialect.SupportsReturning() {
		err := r.DB.QueryRowContext(ctx, query+" RETURNING report_id", report.Scope, report.Metrics, report.GeneratedDate).
			Scan(&report.ReportID)
		if err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		return nil
	}

	res, err := r.DB.ExecContext(ctx, query, report.Scope, report.Metrics, report.GeneratedDate)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	report.ReportID = id
	return nil
}

func (r *ReportRepositoryImpl) Get(ctx context.Context, id int64) (*Report, error) {
	query := r.Dialect.Rebind("SELECT " + reportColumns + " FROM reports WHERE report_id = ?")

	var report Report
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&report.ReportID, &report.Scope, &report.Metrics, &report.GeneratedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return &report, nil
}

func (r *ReportRepositoryImpl) List(ctx context.Context) ([]Report, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+reportColumns+" FROM reports ORDER BY report_id")
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		var report Report
		if err := rows.Scan(&report.ReportID, &report.Scope, &report.Metrics, &report.GeneratedDate); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (r *ReportRepositoryImpl) Update(ctx context.Context, report *Report) error {
	query := r.Dialect.Rebind("UPDATE reports SET scope = ?, metrics = ? WHERE report_id = ?")
	if _, err := r.DB.ExecContext(ctx, query, report.Scope, report.Metrics, report.ReportID); err != nil {
		return fmt.Errorf("update report %d: %w", report.ReportID, err)
	}
	return nil
}

func (r *ReportRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := r.Dialect.Rebind("DELETE FROM reports WHERE report_id = ?")
	if _, err := r.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete report %d: %w", id, err)
	}
	return nil
}
