package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlink/jobboard/internal/authz"
	"github.com/careerlink/jobboard/internal/models"
	"github.com/careerlink/jobboard/internal/utils"
)

func seedApplication(t *testing.T, repo *fakeApplicationRepo, id string, notifications []models.Notification) {
	t.Helper()
	err := repo.Create(context.Background(), &models.Application{
		ApplicationID: id,
		Applicant:     models.PartyRef{UserID: seekerID, Role: models.RoleJobSeeker},
		Employer:      models.PartyRef{UserID: employerID, Role: models.RoleEmployer},
		JobID:         jobID,
		Status:        models.StatusApplied,
		Notifications: notifications,
	})
	require.NoError(t, err)
}

func notifAt(id string, typ models.NotificationType, read bool, ts time.Time) models.Notification {
	return models.Notification{
		ID:        id,
		Message:   "n-" + id,
		Type:      typ,
		Read:      read,
		Timestamp: ts,
	}
}

func TestListFlattensAndSortsDescending(t *testing.T) {
	repo := newFakeApplicationRepo()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedApplication(t, repo, "app-1", []models.Notification{
		notifAt("a", models.NotificationStatusUpdate, false, base.Add(1*time.Hour)),
		notifAt("b", models.NotificationInterview, false, base.Add(3*time.Hour)),
	})
	seedApplication(t, repo, "app-2", []models.Notification{
		notifAt("c", models.NotificationFollowUp, true, base.Add(2*time.Hour)),
	})

	svc := NewNotificationService(repo)
	page, err := svc.List(context.Background(), seeker, NotificationFilter{})
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, "b", page.Items[0].ID)
	assert.Equal(t, "c", page.Items[1].ID)
	assert.Equal(t, "a", page.Items[2].ID)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Pages)
}

func TestListFilters(t *testing.T) {
	repo := newFakeApplicationRepo()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedApplication(t, repo, "app-1", []models.Notification{
		notifAt("a", models.NotificationStatusUpdate, false, base),
		notifAt("b", models.NotificationInterview, false, base.Add(time.Hour)),
		notifAt("c", models.NotificationInterview, true, base.Add(2*time.Hour)),
	})

	svc := NewNotificationService(repo)

	typ := models.NotificationInterview
	page, err := svc.List(context.Background(), seeker, NotificationFilter{Type: &typ})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)

	unread := false
	page, err = svc.List(context.Background(), seeker, NotificationFilter{Type: &typ, Read: &unread})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b", page.Items[0].ID)
}

func TestListEmptyIsSuccess(t *testing.T) {
	svc := NewNotificationService(newFakeApplicationRepo())

	page, err := svc.List(context.Background(), seeker, NotificationFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.Pages)
}

func TestListPaginates(t *testing.T) {
	repo := newFakeApplicationRepo()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var ns []models.Notification
	for i := 0; i < 7; i++ {
		ns = append(ns, notifAt(fmt.Sprintf("n%d", i), models.NotificationGeneral, false, base.Add(time.Duration(i)*time.Minute)))
	}
	seedApplication(t, repo, "app-1", ns)

	svc := NewNotificationService(repo)

	page, err := svc.List(context.Background(), seeker, NotificationFilter{Page: 1, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total, "total is post-filter, pre-pagination")
	assert.Equal(t, 3, page.Pages)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "n6", page.Items[0].ID)

	page, err = svc.List(context.Background(), seeker, NotificationFilter{Page: 3, PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "n0", page.Items[0].ID)

	// out-of-range page is an empty success, not an error
	page, err = svc.List(context.Background(), seeker, NotificationFilter{Page: 9, PageSize: 3})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 7, page.Total)
}

func TestListIsRoleScoped(t *testing.T) {
	repo := newFakeApplicationRepo()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedApplication(t, repo, "app-1", []models.Notification{
		notifAt("a", models.NotificationGeneral, false, base),
	})

	svc := NewNotificationService(repo)

	// the employer side of the same application sees the same stream
	page, err := svc.List(context.Background(), employer, NotificationFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	// an unrelated seeker sees nothing
	stranger := authz.Principal{UserID: "c2a7a9d4-0042-4000-8000-000000000042", Role: models.RoleJobSeeker}
	page, err = svc.List(context.Background(), stranger, NotificationFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo := newFakeApplicationRepo()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedApplication(t, repo, "app-1", []models.Notification{
		notifAt("a", models.NotificationGeneral, false, base),
		notifAt("b", models.NotificationGeneral, false, base),
	})

	svc := NewNotificationService(repo)

	ids := []string{"a", "ghost"}
	require.NoError(t, svc.MarkRead(context.Background(), seeker, "app-1", ids))
	require.NoError(t, svc.MarkRead(context.Background(), seeker, "app-1", ids), "safe to retry")

	got, err := repo.GetByApplicationID(context.Background(), "app-1")
	require.NoError(t, err)
	assert.True(t, got.Notifications[0].Read)
	assert.False(t, got.Notifications[1].Read)
}

func TestMarkReadAuthorization(t *testing.T) {
	repo := newFakeApplicationRepo()
	seedApplication(t, repo, "app-1", []models.Notification{
		notifAt("a", models.NotificationGeneral, false, time.Now().UTC()),
	})

	svc := NewNotificationService(repo)

	// a seeker who is not the applicant is rejected even though an employer
	// with the same id would pass the employer-side check
	stranger := authz.Principal{UserID: employerID, Role: models.RoleJobSeeker}
	err := svc.MarkRead(context.Background(), stranger, "app-1", []string{"a"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))

	require.NoError(t, svc.MarkRead(context.Background(), employer, "app-1", []string{"a"}))
}

func TestMarkReadMissingApplication(t *testing.T) {
	svc := NewNotificationService(newFakeApplicationRepo())

	err := svc.MarkRead(context.Background(), seeker, "missing", []string{"a"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
