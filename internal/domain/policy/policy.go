// Package policy decides whether an actor may perform an action on a resource.
// Every ownership and role check in the service goes through Decide.
package policy

import (
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/profile"

	"github.com/google/uuid"
)

type Action string

const (
	CreateCompany       Action = "create_company"
	EditCompany         Action = "edit_company"
	CreateJob           Action = "create_job"
	EditJob             Action = "edit_job"
	PublishJob          Action = "publish_job"
	DeleteJob           Action = "delete_job"
	DuplicateJob        Action = "duplicate_job"
	PreviewJob          Action = "preview_job"
	ViewJobApplications Action = "view_job_applications"
	Apply               Action = "apply"
	SaveJob             Action = "save_job"
	EditApplication     Action = "edit_application"
	ReviewApplication   Action = "review_application"
	ManageSavedJob      Action = "manage_saved_job"
	CreateAlert         Action = "create_alert"
	ManageAlert         Action = "manage_alert"
	ReadNotification    Action = "read_notification"
	ViewProfile         Action = "view_profile"
)

type Reason string

const (
	ReasonNone      Reason = ""
	ReasonAnonymous Reason = "anonymous"
	ReasonWrongRole Reason = "wrong_role"
	ReasonNotOwner  Reason = "not_owner"
)

// Actor is the caller, identified by profile. The zero value is anonymous.
type Actor struct {
	ProfileID uuid.UUID
	Role      profile.UserType
}

func ActorFrom(p *profile.Profile) Actor {
	if p == nil {
		return Actor{}
	}
	return Actor{ProfileID: p.ID, Role: p.UserType}
}

func (a Actor) Anonymous() bool { return a.ProfileID == uuid.Nil }

// Resource is the target of an action, reduced to what the rules look at.
type Resource struct {
	Owners     []uuid.UUID
	Visibility profile.Visibility
}

func None() Resource { return Resource{} }

func OwnedBy(id uuid.UUID) Resource { return Resource{Owners: []uuid.UUID{id}} }

// JobResource is owned by the poster and, when the company is loaded, by the company creator.
func JobResource(j job.Job) Resource {
	r := Resource{Owners: []uuid.UUID{j.PostedBy}}
	if j.Company != nil && j.Company.CreatedBy != uuid.Nil {
		r.Owners = append(r.Owners, j.Company.CreatedBy)
	}
	return r
}

func CompanyResource(c company.Company) Resource { return OwnedBy(c.CreatedBy) }

// ApplicationResource is owned by the applicant.
func ApplicationResource(a application.Application) Resource { return OwnedBy(a.ApplicantID) }

// ApplicationJobResource is owned by whoever may edit the application's job.
func ApplicationJobResource(a application.Application) Resource {
	if a.Job == nil {
		return Resource{}
	}
	r := Resource{Owners: []uuid.UUID{a.Job.PostedBy}}
	if a.Job.CompanyCreatedBy != uuid.Nil {
		r.Owners = append(r.Owners, a.Job.CompanyCreatedBy)
	}
	return r
}

func ProfileResource(p profile.Profile) Resource {
	return Resource{Owners: []uuid.UUID{p.ID}, Visibility: p.Visibility}
}

func (r Resource) ownedBy(id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	for _, o := range r.Owners {
		if o == id {
			return true
		}
	}
	return false
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision           { return Decision{Allowed: true} }
func deny(r Reason) Decision    { return Decision{Reason: r} }
func (d Decision) Denied() bool { return !d.Allowed }

func Decide(actor Actor, action Action, res Resource) Decision {
	if action == ViewProfile {
		return decideProfileView(actor, res)
	}
	if actor.Anonymous() {
		return deny(ReasonAnonymous)
	}

	switch action {
	case CreateCompany, CreateJob:
		return requireRole(actor, profile.UserTypeEmployer)
	case Apply, SaveJob, CreateAlert:
		return requireRole(actor, profile.UserTypeJobSeeker)
	case EditJob, PublishJob, DeleteJob, DuplicateJob, PreviewJob, ViewJobApplications,
		EditCompany, EditApplication, ReviewApplication,
		ManageSavedJob, ManageAlert, ReadNotification:
		if res.ownedBy(actor.ProfileID) {
			return allow()
		}
		return deny(ReasonNotOwner)
	}
	return deny(ReasonNotOwner)
}

func requireRole(actor Actor, role profile.UserType) Decision {
	if actor.Role != role {
		return deny(ReasonWrongRole)
	}
	return allow()
}

func decideProfileView(actor Actor, res Resource) Decision {
	if res.ownedBy(actor.ProfileID) {
		return allow()
	}
	switch res.Visibility {
	case profile.VisibilityPublic, "":
		return allow()
	case profile.VisibilityEmployersOnly:
		if actor.Anonymous() {
			return deny(ReasonAnonymous)
		}
		return requireRole(actor, profile.UserTypeEmployer)
	default:
		if actor.Anonymous() {
			return deny(ReasonAnonymous)
		}
		return deny(ReasonNotOwner)
	}
}
