package usecase

import (
	"context"
	"testing"
	"time"

	"job-portal/internal/domain/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardUsecase_Seeker(t *testing.T) {
	db := newMemDB()
	ctx := context.Background()
	uc := NewDashboardUsecase(memApplications{db}, memSaved{db}, memJobs{db}, memCompanies{db}, nil)
	apply := NewApplicationUsecase(memApplications{db}, memJobs{db}, nil, nil)

	seeker := db.addProfile(profile.UserTypeJobSeeker)
	seeker.FirstName = ptr("Ada")
	seeker.LastName = ptr("Lovelace")
	employer := db.addProfile(profile.UserTypeEmployer)
	co := db.addCompany(employer.ID, "Acme")

	now := time.Now()
	for i := range 7 {
		j := db.addJob(co, "Role", true, now.Add(-time.Duration(i)*time.Hour))
		if i < 6 {
			_, err := apply.Apply(ctx, actorOf(seeker), j.ID, ApplyInput{})
			require.NoError(t, err)
		}
		if i == 0 {
			require.NoError(t, memSaved{db}.Save(ctx, seeker.ID, j.ID))
		}
	}

	d, err := uc.Seeker(ctx, seeker)
	require.NoError(t, err)
	assert.Len(t, d.RecentApplications, 5)
	assert.Equal(t, 6, d.ApplicationCount)
	assert.Equal(t, 1, d.SavedJobsCount)
	assert.Equal(t, 25, d.ProfileCompleteness)
	assert.Len(t, d.RecommendedJobs, 5)
	assert.Zero(t, d.ProfileViews)

	_, err = uc.Seeker(ctx, employer)
	assert.ErrorIs(t, err, ErrUseEmployerBoard)
}

func TestDashboardUsecase_Employer(t *testing.T) {
	db := newMemDB()
	ctx := context.Background()
	uc := NewDashboardUsecase(memApplications{db}, memSaved{db}, memJobs{db}, memCompanies{db}, nil)
	apply := NewApplicationUsecase(memApplications{db}, memJobs{db}, nil, nil)

	employer := db.addProfile(profile.UserTypeEmployer)
	seeker := db.addProfile(profile.UserTypeJobSeeker)

	empty, err := uc.Employer(ctx, employer)
	require.NoError(t, err)
	assert.Nil(t, empty.Company)
	assert.Zero(t, empty.ActiveJobs)

	co := db.addCompany(employer.ID, "Acme")
	now := time.Now()
	a := db.addJob(co, "A", true, now.Add(-2*time.Hour))
	b := db.addJob(co, "B", true, now.Add(-time.Hour))
	db.addJob(co, "Draft", false, now)

	_, err = apply.Apply(ctx, actorOf(seeker), a.ID, ApplyInput{})
	require.NoError(t, err)
	_, err = apply.Apply(ctx, actorOf(seeker), b.ID, ApplyInput{})
	require.NoError(t, err)
	require.NoError(t, memJobs{db}.IncrementViews(ctx, a.ID))
	require.NoError(t, memJobs{db}.IncrementViews(ctx, a.ID))
	require.NoError(t, memJobs{db}.IncrementViews(ctx, b.ID))

	d, err := uc.Employer(ctx, employer)
	require.NoError(t, err)
	require.NotNil(t, d.Company)
	assert.Equal(t, "Acme", d.Company.Name)
	assert.Equal(t, 2, d.ActiveJobs)
	assert.Equal(t, 2, d.TotalApplications)
	assert.Equal(t, 3, d.TotalViews)
	assert.Equal(t, 2, d.PendingReviews)
	require.Len(t, d.RecentJobs, 3)
	assert.Equal(t, "Draft", d.RecentJobs[0].Title)

	_, err = uc.Employer(ctx, seeker)
	assert.ErrorIs(t, err, ErrWrongRole)
}
