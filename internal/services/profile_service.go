package services

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"jobtrail/internal/dtos"
	"jobtrail/internal/models"
)

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// GetOrCreate returns the singleton profile, creating an empty one on first
// use. Single-user system: whatever row exists first wins.
func (s *ProfileService) GetOrCreate() (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{}
		if err := s.DB.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update applies the non-nil profile fields. Fields absent from the
// request stay as they are, so a name-only edit leaves the resume alone.
func (s *ProfileService) Update(req *dtos.ProfileUpdateRequest) (*models.Profile, error) {
	profile, err := s.GetOrCreate()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	for column, value := range map[string]*string{
		"name":                  req.Name,
		"email":                 req.Email,
		"phone":                 req.Phone,
		"linkedin_url":          req.LinkedinURL,
		"github_url":            req.GithubURL,
		"portfolio_url":         req.PortfolioURL,
		"resume_text":           req.ResumeText,
		"cover_letter_template": req.CoverLetterTemplate,
	} {
		if value != nil {
			updates[column] = *value
		}
	}

	if len(updates) > 0 {
		if err := s.DB.Model(profile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Profile
	if err := s.DB.First(&updated, "id = ?", profile.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// SaveResume stores extracted resume text on the profile, normalized for
// prompt embedding.
func (s *ProfileService) SaveResume(text, fileName string) (string, error) {
	text = NormalizeResumeText(text)

	profile, err := s.GetOrCreate()
	if err != nil {
		return "", err
	}
	err = s.DB.Model(profile).Updates(map[string]interface{}{
		"resume_text":      text,
		"resume_file_name": fileName,
	}).Error
	if err != nil {
		return "", err
	}
	return text, nil
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	newlinesRe   = regexp.MustCompile(`\n+`)
)

// NormalizeResumeText collapses whitespace runs and trims. Extracted PDF
// text is full of layout artifacts that just waste prompt tokens.
func NormalizeResumeText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = newlinesRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
