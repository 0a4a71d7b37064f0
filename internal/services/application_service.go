package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jobtrail/internal/dtos"
	"jobtrail/internal/models"
)

type ApplicationService struct {
	DB       *gorm.DB
	Profiles *ProfileService
}

func NewApplicationService(db *gorm.DB, profiles *ProfileService) *ApplicationService {
	return &ApplicationService{DB: db, Profiles: profiles}
}

// Create starts tracking a job. Idempotent by job id: if an application
// already exists it is returned as-is instead of creating a duplicate.
// New applications enter the pipeline at APPLIED with appliedDate stamped.
func (s *ApplicationService) Create(jobID string) (*models.Application, error) {
	var job models.Job
	if err := s.DB.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, err
	}

	var existing models.Application
	err := s.DB.Preload("Job").Preload("Job.Company").
		Where("job_id = ?", jobID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile, err := s.Profiles.GetOrCreate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	app := models.Application{
		JobID:       jobID,
		ProfileID:   profile.ID,
		Stage:       models.StageApplied,
		AppliedDate: &now,
	}
	if err := s.DB.Create(&app).Error; err != nil {
		return nil, err
	}

	s.logStageChange(app.ID, "", models.StageApplied, "Application created")

	if err := s.DB.Preload("Job").Preload("Job.Company").First(&app, "id = ?", app.ID).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Update applies a stage move and/or field edits. Any stage is reachable
// from any other; the board doesn't enforce an ordering.
func (s *ApplicationService) Update(id string, req *dtos.ApplicationUpdateRequest) (*models.Application, error) {
	var app models.Application
	if err := s.DB.First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}

	fromStage := app.Stage

	updates := map[string]interface{}{}
	if req.Stage != nil {
		updates["stage"] = *req.Stage
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	for column, value := range map[string]*string{
		"interview_date": req.InterviewDate,
		"offer_date":     req.OfferDate,
		"rejected_date":  req.RejectedDate,
	} {
		if value == nil {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, *value)
		if err != nil {
			return nil, fmt.Errorf("invalid date for %s: %w", column, err)
		}
		updates[column] = parsed
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&app).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if req.Stage != nil && *req.Stage != fromStage {
		s.logStageChange(app.ID, fromStage, *req.Stage, "")
	}

	if err := s.DB.Preload("Job").Preload("Job.Company").First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) List() ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.Preload("Job").Preload("Job.Company").
		Order("updated_at desc").Find(&apps).Error
	return apps, err
}

func (s *ApplicationService) Delete(id string) error {
	var app models.Application
	if err := s.DB.First(&app, "id = ?", id).Error; err != nil {
		return err
	}
	if err := s.DB.Where("application_id = ?", id).Delete(&models.StageEvent{}).Error; err != nil {
		return err
	}
	return s.DB.Delete(&app).Error
}

// Events returns the stage log for one application, oldest first.
func (s *ApplicationService) Events(id string) ([]models.StageEvent, error) {
	var app models.Application
	if err := s.DB.First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	var events []models.StageEvent
	err := s.DB.Where("application_id = ?", id).Order("created_at asc").Find(&events).Error
	return events, err
}

// logStageChange is best-effort; a failed log line never fails the update.
func (s *ApplicationService) logStageChange(appID, from, to, details string) {
	event := models.StageEvent{
		ApplicationID: appID,
		FromStage:     from,
		ToStage:       to,
		Details:       details,
	}
	_ = s.DB.Create(&event).Error
}
