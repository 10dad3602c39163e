// Package authz holds the ownership predicates shared by the lifecycle
// and notification services. The role on a Principal is taken verbatim
// from the resolved credential; it is never re-read from storage.
package authz

import "github.com/careerlink/jobboard/internal/models"

type Principal struct {
	UserID string
	Role   models.Role
}

// PartyRefOf stamps the principal onto a record, role claim included.
func PartyRefOf(p Principal) models.PartyRef {
	return models.PartyRef{UserID: p.UserID, Role: p.Role}
}

func IsEmployerOf(p Principal, app *models.Application) bool {
	return p.Role == models.RoleEmployer && app.Employer.UserID == p.UserID
}

func IsApplicantOf(p Principal, app *models.Application) bool {
	return p.Role == models.RoleJobSeeker && app.Applicant.UserID == p.UserID
}

func IsPartyOf(p Principal, app *models.Application) bool {
	return IsApplicantOf(p, app) || IsEmployerOf(p, app)
}
