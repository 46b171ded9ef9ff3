package usecase

import (
	"context"
	"testing"
	"time"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/notification"
	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"
	"job-portal/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	db       *memDB
	uc       *ApplicationService
	bus      *recordingBus
	employer profile.Profile
	seeker   profile.Profile
	company  company.Company
	live     job.Job
	draft    job.Job
}

func newApplicationFixture(t *testing.T) applicationFixture {
	t.Helper()
	db := newMemDB()
	bus := newRecordingBus(t)
	employer := db.addProfile(profile.UserTypeEmployer)
	seeker := db.addProfile(profile.UserTypeJobSeeker)
	co := db.addCompany(employer.ID, "Acme")
	return applicationFixture{
		db:       db,
		uc:       NewApplicationUsecase(memApplications{db}, memJobs{db}, bus.bus, nil),
		bus:      bus,
		employer: employer,
		seeker:   seeker,
		company:  co,
		live:     db.addJob(co, "Backend Engineer", true, time.Now()),
		draft:    db.addJob(co, "Draft role", false, time.Now()),
	}
}

func TestApplicationUsecase_Apply(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	a, err := f.uc.Apply(ctx, actorOf(f.seeker), f.live.ID, ApplyInput{CoverLetter: ptr("  hello ")})
	require.NoError(t, err)
	assert.Equal(t, application.StatusPending, a.Status)
	assert.Equal(t, "hello", *a.CoverLetter)
	assert.Equal(t, 1, f.bus.count(events.ApplicationCreatedTopic))

	stored, _ := memJobs{f.db}.GetByID(ctx, f.live.ID)
	assert.Equal(t, 1, stored.ApplicationCount)

	_, err = f.uc.Apply(ctx, actorOf(f.seeker), f.live.ID, ApplyInput{})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApplicationUsecase_ApplyRules(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	_, err := f.uc.Apply(ctx, policy.Actor{}, f.live.ID, ApplyInput{})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.uc.Apply(ctx, actorOf(f.employer), f.live.ID, ApplyInput{})
	assert.ErrorIs(t, err, ErrWrongRole)

	_, err = f.uc.Apply(ctx, actorOf(f.seeker), f.draft.ID, ApplyInput{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.uc.Apply(ctx, actorOf(f.seeker), uuid.New(), ApplyInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationUsecase_ReviewFlow(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, actorOf(f.seeker), f.live.ID, ApplyInput{})
	require.NoError(t, err)

	_, err = f.uc.ListForJob(ctx, actorOf(f.seeker), f.live.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	list, err := f.uc.ListForJob(ctx, actorOf(f.employer), f.live.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = f.uc.UpdateStatus(ctx, actorOf(f.employer), a.ID, "hired", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.UpdateStatus(ctx, actorOf(f.seeker), a.ID, application.StatusOffer, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	// no state machine: rejected can go back to interview
	_, err = f.uc.UpdateStatus(ctx, actorOf(f.employer), a.ID, application.StatusRejected, nil)
	require.NoError(t, err)
	out, err := f.uc.UpdateStatus(ctx, actorOf(f.employer), a.ID, application.StatusInterview, ptr("call on monday"))
	require.NoError(t, err)
	assert.Equal(t, application.StatusInterview, out.Status)
	assert.Equal(t, "call on monday", *out.Notes)
	assert.Equal(t, 2, f.bus.count(events.ApplicationStatusChangedTopic))
}

func TestApplicationUsecase_Withdraw(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	a, err := f.uc.Apply(ctx, actorOf(f.seeker), f.live.ID, ApplyInput{})
	require.NoError(t, err)

	_, err = f.uc.Withdraw(ctx, actorOf(f.employer), a.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	out, err := f.uc.Withdraw(ctx, actorOf(f.seeker), a.ID)
	require.NoError(t, err)
	assert.Equal(t, application.StatusWithdrawn, out.Status)

	mine, err := f.uc.ListMine(ctx, actorOf(f.seeker))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Acme", mine[0].Job.CompanyName)
}

func TestNotificationUsecase_ApplicationEvents(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	notes := NewNotificationUsecase(memNotifications{f.db}, nil)
	require.NoError(t, notes.SubscribeApplicationEvents(f.bus.bus))

	a, err := f.uc.Apply(ctx, actorOf(f.seeker), f.live.ID, ApplyInput{})
	require.NoError(t, err)

	employerInbox, err := notes.List(ctx, actorOf(f.employer), true)
	require.NoError(t, err)
	require.Len(t, employerInbox, 1)
	assert.Equal(t, notification.TypeApplicationUpdate, employerInbox[0].Type)
	assert.Contains(t, employerInbox[0].Message, "Backend Engineer")

	_, err = f.uc.UpdateStatus(ctx, actorOf(f.employer), a.ID, application.StatusInterview, nil)
	require.NoError(t, err)

	seekerInbox, err := notes.List(ctx, actorOf(f.seeker), false)
	require.NoError(t, err)
	require.Len(t, seekerInbox, 1)
	assert.Equal(t, "Your application for Backend Engineer is now interview", seekerInbox[0].Message)
}
