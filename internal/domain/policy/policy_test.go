package policy

import (
	"testing"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func employer() Actor { return Actor{ProfileID: uuid.New(), Role: profile.UserTypeEmployer} }
func seeker() Actor   { return Actor{ProfileID: uuid.New(), Role: profile.UserTypeJobSeeker} }

func TestDecide_PublishJob(t *testing.T) {
	poster := employer()
	creator := employer()
	stranger := employer()

	j := job.Job{
		ID:       uuid.New(),
		PostedBy: poster.ProfileID,
		Company:  &job.CompanyRef{CreatedBy: creator.ProfileID},
	}
	res := JobResource(j)

	assert.True(t, Decide(poster, PublishJob, res).Allowed)
	assert.True(t, Decide(creator, PublishJob, res).Allowed)

	d := Decide(stranger, PublishJob, res)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotOwner, d.Reason)

	d = Decide(Actor{}, PublishJob, res)
	assert.Equal(t, ReasonAnonymous, d.Reason)
}

func TestDecide_JobWithoutCompanyLoaded(t *testing.T) {
	poster := employer()
	j := job.Job{PostedBy: poster.ProfileID}

	assert.True(t, Decide(poster, EditJob, JobResource(j)).Allowed)
	assert.False(t, Decide(employer(), EditJob, JobResource(j)).Allowed)
}

func TestDecide_AdminHasNoOverride(t *testing.T) {
	admin := Actor{ProfileID: uuid.New(), Role: profile.UserTypeAdmin}
	j := job.Job{PostedBy: uuid.New()}

	assert.False(t, Decide(admin, DeleteJob, JobResource(j)).Allowed)
	assert.Equal(t, ReasonWrongRole, Decide(admin, CreateJob, None()).Reason)
}

func TestDecide_Roles(t *testing.T) {
	assert.True(t, Decide(employer(), CreateCompany, None()).Allowed)
	assert.Equal(t, ReasonWrongRole, Decide(seeker(), CreateJob, None()).Reason)
	assert.True(t, Decide(seeker(), Apply, None()).Allowed)
	assert.Equal(t, ReasonWrongRole, Decide(employer(), SaveJob, None()).Reason)
	assert.Equal(t, ReasonAnonymous, Decide(Actor{}, Apply, None()).Reason)
}

func TestDecide_Applications(t *testing.T) {
	applicant := seeker()
	poster := employer()
	app := application.Application{
		ApplicantID: applicant.ProfileID,
		Job:         &application.JobRef{PostedBy: poster.ProfileID},
	}

	assert.True(t, Decide(applicant, EditApplication, ApplicationResource(app)).Allowed)
	assert.False(t, Decide(poster, EditApplication, ApplicationResource(app)).Allowed)

	assert.True(t, Decide(poster, ReviewApplication, ApplicationJobResource(app)).Allowed)
	assert.False(t, Decide(applicant, ReviewApplication, ApplicationJobResource(app)).Allowed)
	assert.False(t, Decide(poster, ReviewApplication, ApplicationJobResource(application.Application{})).Allowed)
}

func TestDecide_ViewProfile(t *testing.T) {
	owner := seeker()
	p := profile.Profile{ID: owner.ProfileID}

	p.Visibility = profile.VisibilityPublic
	assert.True(t, Decide(Actor{}, ViewProfile, ProfileResource(p)).Allowed)

	p.Visibility = profile.VisibilityEmployersOnly
	assert.True(t, Decide(employer(), ViewProfile, ProfileResource(p)).Allowed)
	assert.Equal(t, ReasonWrongRole, Decide(seeker(), ViewProfile, ProfileResource(p)).Reason)
	assert.Equal(t, ReasonAnonymous, Decide(Actor{}, ViewProfile, ProfileResource(p)).Reason)
	assert.True(t, Decide(owner, ViewProfile, ProfileResource(p)).Allowed)

	p.Visibility = profile.VisibilityPrivate
	assert.Equal(t, ReasonNotOwner, Decide(employer(), ViewProfile, ProfileResource(p)).Reason)
	assert.True(t, Decide(owner, ViewProfile, ProfileResource(p)).Allowed)
}

func TestActorFrom(t *testing.T) {
	assert.True(t, ActorFrom(nil).Anonymous())

	p := &profile.Profile{ID: uuid.New(), UserType: profile.UserTypeEmployer}
	a := ActorFrom(p)
	assert.Equal(t, p.ID, a.ProfileID)
	assert.Equal(t, profile.UserTypeEmployer, a.Role)
}

func TestDecide_OwnedRows(t *testing.T) {
	owner := seeker()
	other := seeker()

	for _, action := range []Action{ManageSavedJob, ManageAlert, ReadNotification} {
		assert.True(t, Decide(owner, action, OwnedBy(owner.ProfileID)).Allowed, action)
		assert.Equal(t, ReasonNotOwner, Decide(other, action, OwnedBy(owner.ProfileID)).Reason, action)
	}
}
