package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"jobtrail/internal/dtos"
	"jobtrail/internal/models"
)

// ErrNoResume means analysis was requested before a resume was uploaded.
var ErrNoResume = errors.New("no resume found")

// ScanResult is the ingestion response: the job, whether this scan created
// it, and whether match analysis ran.
type ScanResult struct {
	Job      *models.Job `json:"job"`
	IsNew    bool        `json:"isNew"`
	Analyzed bool        `json:"analyzed"`
}

type JobService struct {
	DB       *gorm.DB
	Analysis *AnalysisService
	Profiles *ProfileService
}

func NewJobService(db *gorm.DB, analysis *AnalysisService, profiles *ProfileService) *JobService {
	return &JobService{
		DB:       db,
		Analysis: analysis,
		Profiles: profiles,
	}
}

// ScanJob ingests a job-scan payload from the extension.
//
// Jobs are deduplicated by exact source URL: re-scanning a known URL returns
// the stored job untouched, whatever else changed in the payload. When the
// profile has resume text the new job is analyzed synchronously, but an
// analysis failure never fails the scan - the job is returned unanalyzed.
func (s *JobService) ScanJob(ctx context.Context, req *dtos.JobScanRequest) (*ScanResult, error) {
	profile, err := s.Profiles.GetOrCreate()
	if err != nil {
		return nil, err
	}

	var company models.Company
	err = s.DB.Where("name = ?", req.CompanyName).First(&company).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		company = models.Company{
			Name:    req.CompanyName,
			LogoURL: req.CompanyLogoURL,
			Website: req.CompanyWebsite,
		}
		if err := s.DB.Create(&company).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case req.CompanyLogoURL != "" && company.LogoURL == "":
		// Backfill the logo if the scan has one and we don't.
		if err := s.DB.Model(&company).Update("logo_url", req.CompanyLogoURL).Error; err != nil {
			return nil, err
		}
	}

	var existing models.Job
	err = s.DB.Preload("Company").Preload("Application").
		Where("source_url = ?", req.SourceURL).First(&existing).Error
	if err == nil {
		return &ScanResult{Job: &existing, IsNew: false, Analyzed: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	job := models.Job{
		CompanyID:        company.ID,
		ProfileID:        profile.ID,
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Location:         req.Location,
		LocationType:     req.LocationType,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		SalaryCurrency:   req.SalaryCurrency,
		SalaryPeriod:     req.SalaryPeriod,
		EmploymentType:   req.EmploymentType,
		ExperienceLevel:  req.ExperienceLevel,
		SourceURL:        req.SourceURL,
		SourceSite:       req.SourceSite,
	}
	if err := s.DB.Create(&job).Error; err != nil {
		return nil, err
	}

	analyzed := false
	if profile.ResumeText != "" {
		if err := s.runAnalysis(ctx, &job, profile.ResumeText, company.Name); err != nil {
			log.Printf("Analysis failed for job %s, returning it unanalyzed: %v", job.ID, err)
		} else {
			analyzed = true
		}
	}

	if err := s.DB.Preload("Company").Preload("Application").First(&job, "id = ?", job.ID).Error; err != nil {
		return nil, err
	}
	return &ScanResult{Job: &job, IsNew: true, Analyzed: analyzed}, nil
}

// AnalyzeJob re-runs match analysis for a stored job on demand, replacing
// any previous result.
func (s *JobService) AnalyzeJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := s.DB.Preload("Company").First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}

	profile, err := s.Profiles.GetOrCreate()
	if err != nil {
		return nil, err
	}
	if profile.ResumeText == "" {
		return nil, ErrNoResume
	}

	if err := s.runAnalysis(ctx, &job, profile.ResumeText, job.Company.Name); err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Company").Preload("Application").First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// runAnalysis scores the job and drafts bullets, then writes all analysis
// columns in one update. Concurrent runs for the same job just race to a
// last-write-wins; that is acceptable for a single-user tool.
func (s *JobService) runAnalysis(ctx context.Context, job *models.Job, resumeText, companyName string) error {
	analysis, err := s.Analysis.AnalyzeMatch(ctx, resumeText, job.Title, job.Description, job.Requirements)
	if err != nil {
		return err
	}

	bullets, err := s.Analysis.GenerateCoverLetterBullets(ctx, resumeText, job.Title, job.Description, companyName)
	if err != nil {
		return err
	}

	// extractedSkills is a derived convenience column: matching ++ missing.
	extracted := make([]string, 0, len(analysis.MatchingSkills)+len(analysis.MissingSkills))
	extracted = append(extracted, analysis.MatchingSkills...)
	extracted = append(extracted, analysis.MissingSkills...)

	return s.DB.Model(job).Updates(map[string]interface{}{
		"match_score":          analysis.OverallScore,
		"matching_skills":      models.StringList(analysis.MatchingSkills),
		"missing_skills":       models.StringList(analysis.MissingSkills),
		"extracted_skills":     models.StringList(extracted),
		"cover_letter_bullets": models.BulletList(bullets),
	}).Error
}

func (s *JobService) GetJob(id string) (*models.Job, error) {
	var job models.Job
	if err := s.DB.Preload("Company").Preload("Application").First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) ListJobs() ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.Preload("Company").Preload("Application").
		Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

// DeleteJob removes a job along with its application and stage log.
func (s *JobService) DeleteJob(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, "id = ?", id).Error; err != nil {
			return err
		}

		var app models.Application
		err := tx.Where("job_id = ?", id).First(&app).Error
		if err == nil {
			if err := tx.Where("application_id = ?", app.ID).Delete(&models.StageEvent{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&app).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Delete(&job).Error
	})
}
