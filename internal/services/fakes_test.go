package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/careerlink/jobboard/internal/models"
	"github.com/careerlink/jobboard/internal/utils"
)

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*models.Application

	failUpdateOnce error
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*models.Application)}
}

func cloneApp(a *models.Application) *models.Application {
	cp := *a
	if a.Interview != nil {
		iv := *a.Interview
		cp.Interview = &iv
	}
	cp.Notifications = append([]models.Notification(nil), a.Notifications...)
	cp.FollowUps = append([]models.FollowUp(nil), a.FollowUps...)
	cp.Timeline = append([]models.TimelineEntry(nil), a.Timeline...)
	return &cp
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ApplicationID] = cloneApp(app)
	return nil
}

func (r *fakeApplicationRepo) GetByApplicationID(ctx context.Context, id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return cloneApp(app), nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, userID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, app := range r.apps {
		if app.Applicant.UserID == userID {
			out = append(out, *cloneApp(app))
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByEmployer(ctx context.Context, userID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, app := range r.apps {
		if app.Employer.UserID == userID {
			out = append(out, *cloneApp(app))
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByParty(ctx context.Context, userID string, role models.Role) ([]models.Application, error) {
	if role == models.RoleJobSeeker {
		return r.ListByApplicant(ctx, userID)
	}
	return r.ListByEmployer(ctx, userID)
}

func (r *fakeApplicationRepo) Update(ctx context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdateOnce != nil {
		err := r.failUpdateOnce
		r.failUpdateOnce = nil
		return err
	}
	stored, ok := r.apps[app.ApplicationID]
	if !ok {
		return utils.ErrNotFound
	}
	if stored.Revision != app.Revision {
		return utils.ErrConflict
	}
	app.Revision++
	app.UpdatedAt = time.Now().UTC()
	r.apps[app.ApplicationID] = cloneApp(app)
	return nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]models.Job)}
}

func (r *fakeJobRepo) Insert(ctx context.Context, job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = *job
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &job, nil
}

func (r *fakeJobRepo) ListByEmployer(ctx context.Context, postedBy string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, job := range r.jobs {
		if job.PostedBy == postedBy {
			out = append(out, job)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListRecent(ctx context.Context, limit int) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, job := range r.jobs {
		out = append(out, job)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeUploader struct {
	mu         sync.Mutex
	calls      int
	lastObject string
	lastType   string
	err        error
}

func (u *fakeUploader) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	_, _ = io.Copy(io.Discard, r)
	u.lastObject = objectName
	u.lastType = contentType
	return "https://blobs.test/" + objectName, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
