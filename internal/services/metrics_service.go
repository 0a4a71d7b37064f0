package services

import (
	"database/sql"
	"time"

	"gorm.io/gorm"

	"jobtrail/internal/models"
)

// Metrics is the dashboard summary for one period.
type Metrics struct {
	TotalJobs     int64        `json:"totalJobs"`
	AppliedJobs   int64        `json:"appliedJobs"`
	InterviewJobs int64        `json:"interviewJobs"`
	OfferJobs     int64        `json:"offerJobs"`
	AvgMatchScore float64      `json:"avgMatchScore"`
	RecentJobs    []models.Job `json:"recentJobs"`
}

type MetricsService struct {
	DB *gorm.DB
}

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{DB: db}
}

// periodStart maps the period parameter to a cutoff. Unknown values fall
// back to the 30-day window.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		return now.AddDate(0, 0, -7)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// Summary computes the dashboard counters for jobs and applications created
// since the start of the period, plus the average match score across
// analyzed jobs.
func (s *MetricsService) Summary(period string) (*Metrics, error) {
	since := periodStart(period, time.Now())
	m := &Metrics{}

	if err := s.DB.Model(&models.Job{}).
		Where("created_at >= ?", since).Count(&m.TotalJobs).Error; err != nil {
		return nil, err
	}

	stageCounts := map[string]*int64{
		models.StageApplied:   &m.AppliedJobs,
		models.StageInterview: &m.InterviewJobs,
		models.StageOffer:     &m.OfferJobs,
	}
	for stage, dest := range stageCounts {
		if err := s.DB.Model(&models.Application{}).
			Where("stage = ? AND created_at >= ?", stage, since).Count(dest).Error; err != nil {
			return nil, err
		}
	}

	var avg sql.NullFloat64
	err := s.DB.Model(&models.Job{}).
		Where("match_score IS NOT NULL AND created_at >= ?", since).
		Select("avg(match_score)").
		Row().Scan(&avg)
	if err != nil {
		return nil, err
	}
	if avg.Valid {
		m.AvgMatchScore = avg.Float64
	}

	err = s.DB.Preload("Company").
		Where("created_at >= ?", since).
		Order("created_at desc").Limit(5).Find(&m.RecentJobs).Error
	if err != nil {
		return nil, err
	}
	if m.RecentJobs == nil {
		m.RecentJobs = []models.Job{}
	}
	return m, nil
}
