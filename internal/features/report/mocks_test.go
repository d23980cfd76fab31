package report

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// MockReportRepository keeps reports in memory and counts writes.
type MockReportRepository struct {
	Reports map[int64]Report
	NextID  int64
	Err     error

	Creates int
	Updates int
	Deletes int
}

func NewMockReportRepository(reports ...Report) *MockReportRepository {
	m := &MockReportRepository{Reports: map[int64]Report{}, NextID: 1}
	for _, r := range reports {
		m.Reports[r.ReportID] = r
		if r.ReportID >= m.NextID {
			m.NextID = r.ReportID + 1
		}
	}
	return m
}

func (m *MockReportRepository) Create(ctx context.Context, report *Report) error {
	if m.Err != nil {
		return m.Err
	}
	m.Creates++
	report.ReportID = m.NextID
	m.NextID++
	m.Reports[report.ReportID] = *report
	return nil
}

func (m *MockReportRepository) Get(ctx context.Context, id int64) (*Report, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	r, ok := m.Reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return &r, nil
}

func (m *MockReportRepository) List(ctx context.Context) ([]Report, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	reports := []Report{}
	for id := int64(1); id < m.NextID; id++ {
		if r, ok := m.Reports[id]; ok {
			reports = append(reports, r)
		}
	}
	return reports, nil
}

func (m *MockReportRepository) Update(ctx context.Context, report *Report) error {
	if m.Err != nil {
		return m.Err
	}
	m.Updates++
	stored, ok := m.Reports[report.ReportID]
	if !ok {
		return nil
	}
	stored.Scope = report.Scope
	stored.Metrics = report.Metrics
	m.Reports[report.ReportID] = stored
	return nil
}

func (m *MockReportRepository) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deletes++
	delete(m.Reports, id)
	return nil
}

var fixedNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestService(repo ReportRepository) *ReportServiceImpl {
	svc := NewReportService(repo, zap.NewNop()).(*ReportServiceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func mustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
