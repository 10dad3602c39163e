package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careerlink/jobboard/internal/authz"
	"github.com/careerlink/jobboard/internal/cache"
	"github.com/careerlink/jobboard/internal/models"
	mongorepo "github.com/careerlink/jobboard/internal/repositories/mongo"
	pgrepo "github.com/careerlink/jobboard/internal/repositories/postgres"
	"github.com/careerlink/jobboard/internal/storage"
	"github.com/careerlink/jobboard/internal/utils"
)

// resume uploads: images only, matching the submission form
var allowedResumeTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

const jobCacheTTL = 5 * time.Minute

type SubmitInput struct {
	JobID       string
	Name        string
	Email       string
	CoverLetter string
	Phone       string
	Address     string

	ContentType string
	FileSize    int64
	Resume      io.Reader
}

type InterviewInput struct {
	Date     time.Time
	Location string
	Type     models.InterviewType
	Notes    string
}

type ApplicationService interface {
	Submit(ctx context.Context, caller authz.Principal, in SubmitInput) (*models.Application, error)
	ListForApplicant(ctx context.Context, caller authz.Principal) ([]models.Application, error)
	ListForEmployer(ctx context.Context, caller authz.Principal) ([]models.Application, error)
	UpdateStatus(ctx context.Context, caller authz.Principal, applicationID string, status models.ApplicationStatus, note string) error
	ScheduleInterview(ctx context.Context, caller authz.Principal, applicationID string, in InterviewInput) error
	SendFollowUp(ctx context.Context, caller authz.Principal, applicationID, message string) error
	Delete(ctx context.Context, caller authz.Principal, applicationID string) error
}

type applicationService struct {
	apps          mongorepo.ApplicationRepository
	jobs          pgrepo.JobRepository
	uploader      storage.Uploader
	cache         cache.Cache
	uploadTimeout time.Duration
}

func NewApplicationService(
	apps mongorepo.ApplicationRepository,
	jobs pgrepo.JobRepository,
	uploader storage.Uploader,
	c cache.Cache,
	uploadTimeout time.Duration,
) ApplicationService {
	if uploadTimeout <= 0 {
		uploadTimeout = 30 * time.Second
	}
	return &applicationService{
		apps:          apps,
		jobs:          jobs,
		uploader:      uploader,
		cache:         c,
		uploadTimeout: uploadTimeout,
	}
}

func (s *applicationService) Submit(ctx context.Context, caller authz.Principal, in SubmitInput) (*models.Application, error) {
	const op = "ApplicationService.Submit"

	if caller.Role != models.RoleJobSeeker {
		return nil, utils.E(utils.CodeForbidden, op, "only job seekers may submit applications", nil)
	}
	if in.Resume == nil || in.FileSize <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume file is required", nil)
	}
	ext, ok := allowedResumeTypes[in.ContentType]
	if !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid resume type (png, jpeg or webp only)", nil)
	}
	if in.Name == "" || in.Email == "" || in.CoverLetter == "" || in.Phone == "" || in.Address == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "please fill all fields", nil)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "please provide a valid email", err)
	}
	if in.JobID == "" {
		return nil, utils.E(utils.CodeNotFound, op, "job not found", nil)
	}

	job, err := s.lookupJob(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to resolve job", err)
	}

	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	blobID := "resumes/" + caller.UserID + "/" + uuid.NewString() + ext

	// the only call with meaningfully variable latency; bound it
	upCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	url, err := s.uploader.Upload(upCtx, blobID, in.ContentType, in.Resume)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload resume", err)
	}

	now := time.Now().UTC()
	app := &models.Application{
		ApplicationID: uuid.NewString(),
		Applicant:     authz.PartyRefOf(caller),
		Employer:      models.PartyRef{UserID: job.PostedBy, Role: models.RoleEmployer},
		JobID:         job.ID,
		Name:          in.Name,
		Email:         in.Email,
		CoverLetter:   in.CoverLetter,
		Phone:         in.Phone,
		Address:       in.Address,
		Resume:        models.Resume{BlobID: blobID, URL: url},
		Status:        models.StatusApplied,
		Notifications: []models.Notification{},
		FollowUps:     []models.FollowUp{},
		Timeline:      []models.TimelineEntry{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.apps.Create(ctx, app); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	return app, nil
}

func (s *applicationService) ListForApplicant(ctx context.Context, caller authz.Principal) ([]models.Application, error) {
	const op = "ApplicationService.ListForApplicant"

	if caller.Role != models.RoleJobSeeker {
		return nil, utils.E(utils.CodeForbidden, op, "employers not allowed to access this resource", nil)
	}
	out, err := s.apps.ListByApplicant(ctx, caller.UserID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return out, nil
}

func (s *applicationService) ListForEmployer(ctx context.Context, caller authz.Principal) ([]models.Application, error) {
	const op = "ApplicationService.ListForEmployer"

	if caller.Role != models.RoleEmployer {
		return nil, utils.E(utils.CodeForbidden, op, "job seekers not allowed to access this resource", nil)
	}
	out, err := s.apps.ListByEmployer(ctx, caller.UserID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return out, nil
}

// UpdateStatus sets any valid status; the transition graph is deliberately
// unrestricted for the owning employer. The timeline entry and the
// applicant-facing notification land in the same replace as the status.
func (s *applicationService) UpdateStatus(ctx context.Context, caller authz.Principal, applicationID string, status models.ApplicationStatus, note string) error {
	const op = "ApplicationService.UpdateStatus"

	if !status.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "unknown application status", nil)
	}

	app, err := s.get(ctx, op, applicationID)
	if err != nil {
		return err
	}
	if !authz.IsEmployerOf(caller, app) {
		return utils.E(utils.CodeForbidden, op, "not authorized to update this application", nil)
	}

	app.Status = status
	app.Timeline = append(app.Timeline, models.TimelineEntry{
		Action:    fmt.Sprintf("Status changed to %s", status),
		Note:      note,
		Timestamp: time.Now().UTC(),
	})

	msg := fmt.Sprintf("Your application status has been updated to %q", status)
	if note != "" {
		msg += ": " + note
	}
	appendNotification(app, msg, models.NotificationStatusUpdate)

	return s.save(ctx, op, app)
}

// ScheduleInterview overwrites the interview sub-record wholesale and
// forces the status to Interview Scheduled.
func (s *applicationService) ScheduleInterview(ctx context.Context, caller authz.Principal, applicationID string, in InterviewInput) error {
	const op = "ApplicationService.ScheduleInterview"

	if !in.Type.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "unknown interview type", nil)
	}
	if in.Date.IsZero() {
		return utils.E(utils.CodeInvalidArgument, op, "interview date is required", nil)
	}

	app, err := s.get(ctx, op, applicationID)
	if err != nil {
		return err
	}
	if !authz.IsEmployerOf(caller, app) {
		return utils.E(utils.CodeForbidden, op, "not authorized to schedule an interview", nil)
	}

	when := in.Date.UTC()
	app.Interview = &models.Interview{
		Scheduled: true,
		Date:      when,
		Location:  in.Location,
		Type:      in.Type,
		Notes:     in.Notes,
	}
	app.Status = models.StatusInterviewScheduled
	app.Timeline = append(app.Timeline, models.TimelineEntry{
		Action:    "Interview scheduled",
		Note:      fmt.Sprintf("Interview scheduled for %s", when.Format(time.RFC1123)),
		Timestamp: time.Now().UTC(),
	})

	msg := fmt.Sprintf("Interview scheduled for %s. Type: %s", when.Format(time.RFC1123), in.Type)
	if in.Location != "" {
		msg += ". Location: " + in.Location
	}
	appendNotification(app, msg, models.NotificationInterview)

	return s.save(ctx, op, app)
}

func (s *applicationService) SendFollowUp(ctx context.Context, caller authz.Principal, applicationID, message string) error {
	const op = "ApplicationService.SendFollowUp"

	if strings.TrimSpace(message) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}

	app, err := s.get(ctx, op, applicationID)
	if err != nil {
		return err
	}
	if !authz.IsPartyOf(caller, app) {
		return utils.E(utils.CodeForbidden, op, "not authorized to send a follow-up", nil)
	}

	app.FollowUps = append(app.FollowUps, models.FollowUp{
		ID:        uuid.NewString(),
		Message:   message,
		SentBy:    authz.PartyRefOf(caller),
		Timestamp: time.Now().UTC(),
	})
	appendNotification(app,
		fmt.Sprintf("New follow-up message from %s: %s", caller.Role, message),
		models.NotificationFollowUp,
	)

	return s.save(ctx, op, app)
}

func (s *applicationService) Delete(ctx context.Context, caller authz.Principal, applicationID string) error {
	const op = "ApplicationService.Delete"

	if caller.Role != models.RoleJobSeeker {
		return utils.E(utils.CodeForbidden, op, "employers not allowed to access this resource", nil)
	}

	app, err := s.get(ctx, op, applicationID)
	if err != nil {
		return err
	}
	if !authz.IsApplicantOf(caller, app) {
		return utils.E(utils.CodeForbidden, op, "not authorized to delete this application", nil)
	}

	if err := s.apps.Delete(ctx, applicationID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete application", err)
	}
	return nil
}

func (s *applicationService) get(ctx context.Context, op, applicationID string) (*models.Application, error) {
	if applicationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application_id is required", nil)
	}
	app, err := s.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}
	return app, nil
}

func (s *applicationService) save(ctx context.Context, op string, app *models.Application) error {
	err := s.apps.Update(ctx, app)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrConflict):
		return utils.E(utils.CodeConflict, op, "application was modified concurrently, retry", err)
	case errors.Is(err, utils.ErrNotFound):
		return utils.E(utils.CodeNotFound, op, "application not found", err)
	default:
		return utils.E(utils.CodeInternal, op, "failed to save application", err)
	}
}

func (s *applicationService) lookupJob(ctx context.Context, jobID string) (*models.Job, error) {
	key := "job:" + jobID

	if s.cache != nil {
		var cached models.Job
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, job, jobCacheTTL)
	}
	return job, nil
}

func appendNotification(app *models.Application, message string, typ models.NotificationType) {
	app.Notifications = append(app.Notifications, models.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      typ,
		Read:      false,
		Timestamp: time.Now().UTC(),
	})
}
