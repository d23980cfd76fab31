package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ReportService interface {
	// LogMetric records that metric was computed for scope today.
	LogMetric(ctx context.Context, scope, metric string) error
	CreateReport(ctx context.Context, req ReportRequest) (*Report, error)
	ListReports(ctx context.Context) ([]Report, error)
	GetReport(ctx context.Context, id int64) (*Report, error)
	UpdateReport(ctx context.Context, id int64, req ReportRequest) (*Report, error)
	DeleteReport(ctx context.Context, id int64) error
	ExportReports(ctx context.Context, format string) ([]byte, string, error)
}

type ReportServiceImpl struct {
	ReportRepo ReportRepository
	Logger     *zap.Logger

	validate *validator.Validate
	now      func() time.Time
}

func NewReportService(reportRepo ReportRepository, logger *zap.Logger) ReportService {
	return &ReportServiceImpl{
		ReportRepo: reportRepo,
		Logger:     logger,
		validate:   validator.New(),
		now:        time.Now,
	}
}

func (s *ReportServiceImpl) today() Date {
	return NewDate(s.now())
}

func (s *ReportServiceImpl) LogMetric(ctx context.Context, scope, metric string) error {
	report := &Report{
		Scope:         scope,
		Metrics:       metric,
		GeneratedDate: s.today(),
	}
	if err := s.ReportRepo.Create(ctx, report); err != nil {
		return fmt.Errorf("log metric %q: %w", metric, err)
	}
	s.Logger.Debug("metric logged",
		zap.Int64("reportId", report.ReportID),
		zap.String("scope", scope),
		zap.String("metric", metric),
	)
	return nil
}

func (s *ReportServiceImpl) CreateReport(ctx context.Context, req ReportRequest) (*Report, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	report := &Report{
		Scope:         req.Scope,
		Metrics:       req.Metrics,
		GeneratedDate: s.today(),
	}
	if err := s.ReportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	s.Logger.Info("report created", zap.Int64("reportId", report.ReportID), zap.String("scope", report.Scope))
	return report, nil
}

func (s *ReportServiceImpl) ListReports(ctx context.Context) ([]Report, error) {
	return s.ReportRepo.List(ctx)
}

func (s *ReportServiceImpl) GetReport(ctx context.Context, id int64) (*Report, error) {
	report, err := s.ReportRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// UpdateReport changes scope and metrics only. A missing id fails before any write.
func (s *ReportServiceImpl) UpdateReport(ctx context.Context, id int64, req ReportRequest) (*Report, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Scope = req.Scope
	report.Metrics = req.Metrics
	if err := s.ReportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	s.Logger.Info("report updated", zap.Int64("reportId", id))
	return report, nil
}

func (s *ReportServiceImpl) DeleteReport(ctx context.Context, id int64) error {
	if err := s.ReportRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.Info("report deleted", zap.Int64("reportId", id))
	return nil
}

func (s *ReportServiceImpl) validateRequest(req ReportRequest) error {
	if err := s.validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidReport, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidReport, err)
	}
	return nil
}
