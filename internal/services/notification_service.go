package services

import (
	"context"
	"errors"
	"sort"

	"github.com/careerlink/jobboard/internal/authz"
	"github.com/careerlink/jobboard/internal/models"
	mongorepo "github.com/careerlink/jobboard/internal/repositories/mongo"
	"github.com/careerlink/jobboard/internal/utils"
)

const defaultNotificationPageSize = 10

// NotificationFilter narrows the flattened notification stream. Nil
// pointers mean "no filter".
type NotificationFilter struct {
	Type     *models.NotificationType
	Read     *bool
	Page     int
	PageSize int
}

type NotificationPage struct {
	Items []models.Notification `json:"notifications"`
	Total int                   `json:"total"`
	Page  int                   `json:"page"`
	Pages int                   `json:"pages"`
}

type NotificationService interface {
	List(ctx context.Context, caller authz.Principal, f NotificationFilter) (*NotificationPage, error)
	MarkRead(ctx context.Context, caller authz.Principal, applicationID string, notificationIDs []string) error
}

type notificationService struct {
	apps mongorepo.ApplicationRepository
}

func NewNotificationService(apps mongorepo.ApplicationRepository) NotificationService {
	return &notificationService{apps: apps}
}

// List scatter-gathers the caller's applications and flattens their
// embedded notification logs into one page. Total counts the post-filter,
// pre-pagination stream.
func (s *notificationService) List(ctx context.Context, caller authz.Principal, f NotificationFilter) (*NotificationPage, error) {
	const op = "NotificationService.List"

	apps, err := s.apps.ListByParty(ctx, caller.UserID, caller.Role)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}

	var all []models.Notification
	for _, app := range apps {
		all = append(all, app.Notifications...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	filtered := all[:0:0]
	for _, n := range all {
		if f.Type != nil && n.Type != *f.Type {
			continue
		}
		if f.Read != nil && n.Read != *f.Read {
			continue
		}
		filtered = append(filtered, n)
	}

	page := f.Page
	if page <= 0 {
		page = 1
	}
	size := f.PageSize
	if size <= 0 {
		size = defaultNotificationPageSize
	}

	total := len(filtered)
	pages := (total + size - 1) / size

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return &NotificationPage{
		Items: filtered[start:end],
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}

// MarkRead flips read=true for the given ids. Unknown ids are ignored, so
// retries are safe.
func (s *notificationService) MarkRead(ctx context.Context, caller authz.Principal, applicationID string, notificationIDs []string) error {
	const op = "NotificationService.MarkRead"

	if applicationID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "application_id is required", nil)
	}

	app, err := s.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to get application", err)
	}

	// job seekers are checked against the applicant side, everyone else
	// against the employer side
	authorized := authz.IsEmployerOf(caller, app)
	if caller.Role == models.RoleJobSeeker {
		authorized = authz.IsApplicantOf(caller, app)
	}
	if !authorized {
		return utils.E(utils.CodeForbidden, op, "not authorized", nil)
	}

	wanted := make(map[string]struct{}, len(notificationIDs))
	for _, id := range notificationIDs {
		wanted[id] = struct{}{}
	}

	changed := false
	for i := range app.Notifications {
		if _, ok := wanted[app.Notifications[i].ID]; ok && !app.Notifications[i].Read {
			app.Notifications[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}

	err = s.apps.Update(ctx, app)
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
