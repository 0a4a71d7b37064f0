package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application pipeline stages. Transitions are unrestricted: the board UI
// may drag a card from any column to any other.
const (
	StageSaved     = "SAVED"
	StageApplied   = "APPLIED"
	StageScreening = "SCREENING"
	StageInterview = "INTERVIEW"
	StageOffer     = "OFFER"
	StageRejected  = "REJECTED"
	StageWithdrawn = "WITHDRAWN"
	StageAccepted  = "ACCEPTED"
)

// Profile is the single user of the system. There is exactly one row,
// created lazily on first access.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	LinkedinURL  string `json:"linkedin_url"`
	GithubURL    string `json:"github_url"`
	PortfolioURL string `json:"portfolio_url"`

	ResumeText          string `gorm:"type:text" json:"resume_text"`
	ResumeFileName      string `json:"resume_file_name"`
	CoverLetterTemplate string `gorm:"type:text" json:"cover_letter_template"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Company struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name    string `gorm:"uniqueIndex;not null" json:"name"`
	LogoURL string `json:"logo_url"`
	Website string `json:"website"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Company -> Jobs -> ...
	Jobs []Job `json:"jobs,omitempty"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Job is a scanned posting. The analysis fields (MatchScore, skills, bullets)
// are overwritten in place on every analysis run; there is no history.
type Job struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CompanyID string  `json:"company_id"`
	Company   Company `json:"company"`
	ProfileID string  `json:"profile_id"`

	Title            string `gorm:"not null" json:"title"`
	Description      string `gorm:"type:text" json:"description"`
	Requirements     string `gorm:"type:text" json:"requirements"`
	Responsibilities string `gorm:"type:text" json:"responsibilities"`

	Location        string `json:"location"`
	LocationType    string `gorm:"default:'ONSITE'" json:"location_type"`
	SalaryMin       *int   `json:"salary_min"`
	SalaryMax       *int   `json:"salary_max"`
	SalaryCurrency  string `json:"salary_currency"`
	SalaryPeriod    string `json:"salary_period"`
	EmploymentType  string `gorm:"default:'FULL_TIME'" json:"employment_type"`
	ExperienceLevel string `json:"experience_level"`

	SourceURL  string `gorm:"uniqueIndex;not null" json:"source_url"`
	SourceSite string `json:"source_site"`

	MatchScore         *int       `json:"match_score"`
	MatchingSkills     StringList `gorm:"type:text" json:"matching_skills"`
	MissingSkills      StringList `gorm:"type:text" json:"missing_skills"`
	ExtractedSkills    StringList `gorm:"type:text" json:"extracted_skills"`
	CoverLetterBullets BulletList `gorm:"type:text" json:"cover_letter_bullets"`

	Application *Application `json:"application,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

// Application tracks a job through the pipeline. At most one per job.
type Application struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID     string `gorm:"uniqueIndex;not null" json:"job_id"`
	Job       Job    `json:"job"`
	ProfileID string `json:"profile_id"`

	Stage string `gorm:"default:'APPLIED'" json:"stage"`
	Notes string `gorm:"type:text" json:"notes"`

	AppliedDate   *time.Time `json:"applied_date"`
	InterviewDate *time.Time `json:"interview_date"`
	OfferDate     *time.Time `json:"offer_date"`
	RejectedDate  *time.Time `json:"rejected_date"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// StageEvent records each stage change for an application.
type StageEvent struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ApplicationID string    `gorm:"index" json:"application_id"`
	FromStage     string    `json:"from_stage"`
	ToStage       string    `json:"to_stage"`
	Details       string    `gorm:"type:text" json:"details"`
}

func (e *StageEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// CoverLetterBullet is one suggested cover-letter line, tagged with the
// requirement it addresses and how relevant the provider thinks it is.
type CoverLetterBullet struct {
	Text              string `json:"text"`
	Relevance         int    `json:"relevance"`
	TargetRequirement string `json:"targetRequirement"`
}

// StringList stores a []string as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// BulletList stores cover-letter bullets as a JSON text column.
type BulletList []CoverLetterBullet

func (l BulletList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *BulletList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
