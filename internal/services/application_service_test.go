package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobtrail/internal/dtos"
	"jobtrail/internal/models"
)

func newTestApplicationService(t *testing.T) (*ApplicationService, *JobService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	profiles := NewProfileService(db)
	jobs := NewJobService(db, NewAnalysisService(&fakeCompleter{}), profiles)
	return NewApplicationService(db, profiles), jobs, db
}

func createJob(t *testing.T, jobs *JobService) *models.Job {
	t.Helper()
	result, err := jobs.ScanJob(context.Background(), scanRequest())
	require.NoError(t, err)
	return result.Job
}

func TestCreateApplication(t *testing.T) {
	apps, jobs, _ := newTestApplicationService(t)
	job := createJob(t, jobs)

	app, err := apps.Create(job.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StageApplied, app.Stage)
	require.NotNil(t, app.AppliedDate)
	assert.Equal(t, job.ID, app.JobID)
}

func TestCreateApplicationIdempotentByJob(t *testing.T) {
	apps, jobs, db := newTestApplicationService(t)
	job := createJob(t, jobs)

	first, err := apps.Create(job.ID)
	require.NoError(t, err)
	second, err := apps.Create(job.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Application{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateApplicationUnknownJob(t *testing.T) {
	apps, _, _ := newTestApplicationService(t)

	_, err := apps.Create("missing-id")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateStageIsUnrestricted(t *testing.T) {
	apps, jobs, db := newTestApplicationService(t)
	job := createJob(t, jobs)
	app, err := apps.Create(job.ID)
	require.NoError(t, err)

	// Walk stages that no orderly pipeline would allow back to back.
	for _, stage := range []string{models.StageSaved, models.StageOffer, models.StageScreening, models.StageAccepted} {
		stage := stage
		updated, err := apps.Update(app.ID, &dtos.ApplicationUpdateRequest{Stage: &stage})
		require.NoError(t, err)
		assert.Equal(t, stage, updated.Stage)
	}

	// Creation plus four moves means five stage events.
	var events []models.StageEvent
	require.NoError(t, db.Where("application_id = ?", app.ID).Order("created_at asc").Find(&events).Error)
	assert.Len(t, events, 5)
	assert.Equal(t, models.StageApplied, events[0].ToStage)
	assert.Equal(t, models.StageAccepted, events[len(events)-1].ToStage)
}

func TestUpdateNotesAndDates(t *testing.T) {
	apps, jobs, _ := newTestApplicationService(t)
	job := createJob(t, jobs)
	app, err := apps.Create(job.ID)
	require.NoError(t, err)

	notes := "Phone screen went well"
	interview := "2026-09-03T15:00:00Z"
	updated, err := apps.Update(app.ID, &dtos.ApplicationUpdateRequest{
		Notes:         &notes,
		InterviewDate: &interview,
	})
	require.NoError(t, err)

	assert.Equal(t, notes, updated.Notes)
	require.NotNil(t, updated.InterviewDate)
	assert.Equal(t, 2026, updated.InterviewDate.Year())

	bad := "next tuesday"
	_, err = apps.Update(app.ID, &dtos.ApplicationUpdateRequest{InterviewDate: &bad})
	assert.Error(t, err)
}

func TestDeleteApplicationRemovesEvents(t *testing.T) {
	apps, jobs, db := newTestApplicationService(t)
	job := createJob(t, jobs)
	app, err := apps.Create(job.ID)
	require.NoError(t, err)

	require.NoError(t, apps.Delete(app.ID))

	var events int64
	db.Model(&models.StageEvent{}).Where("application_id = ?", app.ID).Count(&events)
	assert.EqualValues(t, 0, events)

	assert.ErrorIs(t, apps.Delete(app.ID), gorm.ErrRecordNotFound)
}

func TestApplicationEvents(t *testing.T) {
	apps, jobs, _ := newTestApplicationService(t)
	job := createJob(t, jobs)
	app, err := apps.Create(job.ID)
	require.NoError(t, err)

	stage := models.StageInterview
	_, err = apps.Update(app.ID, &dtos.ApplicationUpdateRequest{Stage: &stage})
	require.NoError(t, err)

	events, err := apps.Events(app.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.StageApplied, events[0].ToStage)
	assert.Equal(t, models.StageApplied, events[1].FromStage)
	assert.Equal(t, models.StageInterview, events[1].ToStage)

	_, err = apps.Events("missing-id")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
