package analytics

import (
	"context"
	"log/slog"
	"math"
	"time"
)

type RepositoryAPI interface {
	DepartmentCounts(ctx context.Context) ([]DepartmentCount, error)
	BirthDates(ctx context.Context) ([]time.Time, error)
	EmploymentDates(ctx context.Context) ([]time.Time, error)
	Headcount(ctx context.Context) (Headcount, error)
	AverageHoursPerDepartment(ctx context.Context) ([]DepartmentHours, error)
}

type Service struct {
	repo   RepositoryAPI
	now    Clock
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, now Clock, logger *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:   repo,
		now:    now,
		logger: logger,
	}
}

// DepartmentCount includes departments without employees.
func (s *Service) DepartmentCount(ctx context.Context) ([]DepartmentCount, error) {
	rows, err := s.repo.DepartmentCounts(ctx)
	if err != nil {
		s.logger.Error("failed to count employees per department", "error", err)
		return nil, err
	}
	if rows == nil {
		rows = []DepartmentCount{}
	}
	return rows, nil
}

func (s *Service) AverageAge(ctx context.Context) (AverageAge, error) {
	dates, err := s.repo.BirthDates(ctx)
	if err != nil {
		s.logger.Error("failed to load birth dates", "error", err)
		return AverageAge{}, err
	}
	return AverageAge{AverageAge: s.averageYears(dates)}, nil
}

// ChurnRate is the share of inactive employees, in percent.
func (s *Service) ChurnRate(ctx context.Context) (ChurnRate, error) {
	hc, err := s.repo.Headcount(ctx)
	if err != nil {
		s.logger.Error("failed to load headcount", "error", err)
		return ChurnRate{}, err
	}
	if hc.Total == 0 {
		return ChurnRate{}, nil
	}
	return ChurnRate{ChurnRate: round1(float64(hc.Inactive) / float64(hc.Total) * 100)}, nil
}

func (s *Service) AverageTenure(ctx context.Context) (AverageTenure, error) {
	dates, err := s.repo.EmploymentDates(ctx)
	if err != nil {
		s.logger.Error("failed to load employment dates", "error", err)
		return AverageTenure{}, err
	}
	return AverageTenure{AverageTenure: s.averageYears(dates)}, nil
}

// AverageHoursPerDepartment omits departments with no recorded hours.
func (s *Service) AverageHoursPerDepartment(ctx context.Context) ([]DepartmentHours, error) {
	rows, err := s.repo.AverageHoursPerDepartment(ctx)
	if err != nil {
		s.logger.Error("failed to average hours per department", "error", err)
		return nil, err
	}
	out := make([]DepartmentHours, 0, len(rows))
	for _, row := range rows {
		row.AverageHours = round1(row.AverageHours)
		out = append(out, row)
	}
	return out, nil
}

// averageYears is the mean of (current year - year of d), 0 for no dates.
func (s *Service) averageYears(dates []time.Time) float64 {
	if len(dates) == 0 {
		return 0
	}
	year := s.now().Year()
	total := 0
	for _, d := range dates {
		total += year - d.Year()
	}
	return round1(float64(total) / float64(len(dates)))
}

// round1 rounds to one decimal, halves to even: 2.25 becomes 2.2.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
