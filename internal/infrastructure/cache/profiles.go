package cache

import (
	"context"
	"time"

	"job-portal/internal/domain/company"
	"job-portal/internal/domain/profile"
	"job-portal/internal/repository"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// CachedProfiles keeps recently resolved profiles in process memory, keyed by
// login user id. Writes through it evict the entry.
type CachedProfiles struct {
	repo  repository.ProfileRepository
	cache *gocache.Cache
}

func NewCachedProfiles(repo repository.ProfileRepository, ttl time.Duration) *CachedProfiles {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedProfiles{repo: repo, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedProfiles) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	key := userID.String()
	if v, found := c.cache.Get(key); found {
		return v.(profile.Profile), nil
	}

	p, err := c.repo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}
	c.cache.Set(key, p, gocache.DefaultExpiration)
	return p, nil
}

func (c *CachedProfiles) GetByID(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *CachedProfiles) Update(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	out, err := c.repo.Update(ctx, p)
	c.cache.Delete(p.UserID.String())
	return out, err
}

func (c *CachedProfiles) OnboardEmployer(ctx context.Context, p profile.Profile, co company.Company) (profile.Profile, company.Company, error) {
	outP, outC, err := c.repo.OnboardEmployer(ctx, p, co)
	c.cache.Delete(p.UserID.String())
	return outP, outC, err
}

func (c *CachedProfiles) Invalidate(userID uuid.UUID) {
	c.cache.Delete(userID.String())
}
