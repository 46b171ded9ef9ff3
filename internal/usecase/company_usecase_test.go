package usecase

import (
	"context"
	"testing"
	"time"

	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyUsecase_CreateAndUpdate(t *testing.T) {
	db := newMemDB()
	ctx := context.Background()
	uc := NewCompanyUsecase(memCompanies{db}, memJobs{db}, nil)
	employer := db.addProfile(profile.UserTypeEmployer)
	seeker := db.addProfile(profile.UserTypeJobSeeker)

	_, err := uc.Create(ctx, actorOf(seeker), CompanyInput{Name: "Acme"})
	assert.ErrorIs(t, err, ErrWrongRole)

	_, err = uc.Create(ctx, actorOf(employer), CompanyInput{Name: "Acme", Size: ptr("huge")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	c, err := uc.Create(ctx, actorOf(employer), CompanyInput{Name: " Acme ", Benefits: []string{"Remote", "remote"}})
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, []string{"Remote"}, c.Benefits)

	_, err = uc.Create(ctx, actorOf(employer), CompanyInput{Name: "Second"})
	assert.ErrorIs(t, err, ErrConflict)

	other := db.addProfile(profile.UserTypeEmployer)
	_, err = uc.Update(ctx, actorOf(other), c.ID, CompanyInput{Name: "Hijack"})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := uc.Update(ctx, actorOf(employer), c.ID, CompanyInput{Name: "Acme Labs", FoundedYear: ptr(2010)})
	require.NoError(t, err)
	assert.Equal(t, "Acme Labs", updated.Name)

	mine, err := uc.GetMine(ctx, actorOf(employer))
	require.NoError(t, err)
	assert.Equal(t, c.ID, mine.ID)

	_, err = uc.GetMine(ctx, actorOf(other))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = uc.GetMine(ctx, policy.Actor{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCompanyUsecase_GetShowsActiveJobsOnly(t *testing.T) {
	db := newMemDB()
	ctx := context.Background()
	uc := NewCompanyUsecase(memCompanies{db}, memJobs{db}, nil)
	employer := db.addProfile(profile.UserTypeEmployer)
	co := db.addCompany(employer.ID, "Acme")
	db.addJob(co, "Live", true, time.Now())
	db.addJob(co, "Draft", false, time.Now())

	d, err := uc.Get(ctx, co.ID)
	require.NoError(t, err)
	require.Len(t, d.Jobs, 1)
	assert.Equal(t, "Live", d.Jobs[0].Title)

	list, err := uc.List(ctx, "acm", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
