package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/careerlink/jobboard/internal/authz"
	"github.com/careerlink/jobboard/internal/cache"
	"github.com/careerlink/jobboard/internal/models"
	pgrepo "github.com/careerlink/jobboard/internal/repositories/postgres"
	"github.com/careerlink/jobboard/internal/utils"
)

type PostJobInput struct {
	Title       string
	Description string
	Company     string
	Location    string
	Category    string
	Tags        []string
}

type JobService interface {
	Post(ctx context.Context, caller authz.Principal, in PostJobInput) (*models.Job, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	ListRecent(ctx context.Context, limit int) ([]models.Job, error)
	ListMine(ctx context.Context, caller authz.Principal) ([]models.Job, error)
}

type jobService struct {
	jobs  pgrepo.JobRepository
	cache cache.Cache
}

func NewJobService(jobs pgrepo.JobRepository, c cache.Cache) JobService {
	return &jobService{jobs: jobs, cache: c}
}

func (s *jobService) Post(ctx context.Context, caller authz.Principal, in PostJobInput) (*models.Job, error) {
	const op = "JobService.Post"

	if caller.Role != models.RoleEmployer {
		return nil, utils.E(utils.CodeForbidden, op, "only employers may post jobs", nil)
	}
	if in.Title == "" || in.Description == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title and description are required", nil)
	}

	job := &models.Job{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Company:     in.Company,
		Location:    in.Location,
		Category:    in.Category,
		Tags:        pq.StringArray(in.Tags),
		PostedBy:    caller.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.jobs.Insert(ctx, job); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	return job, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	const op = "JobService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job id is required", nil)
	}

	if s.cache != nil {
		var cached models.Job
		if hit, err := s.cache.GetJSON(ctx, "job:"+id, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, "job:"+id, job, jobCacheTTL)
	}
	return job, nil
}

func (s *jobService) ListRecent(ctx context.Context, limit int) ([]models.Job, error) {
	const op = "JobService.ListRecent"

	out, err := s.jobs.ListRecent(ctx, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return out, nil
}

func (s *jobService) ListMine(ctx context.Context, caller authz.Principal) ([]models.Job, error) {
	const op = "JobService.ListMine"

	if caller.Role != models.RoleEmployer {
		return nil, utils.E(utils.CodeForbidden, op, "only employers may list their postings", nil)
	}
	out, err := s.jobs.ListByEmployer(ctx, caller.UserID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return out, nil
}
