package usecase

import (
	"context"
	"strings"
	"time"

	"job-portal/internal/domain/job"
	"job-portal/internal/events"
	"job-portal/internal/infrastructure/cache"
	"job-portal/internal/logger"
	"job-portal/internal/metrics"
	"job-portal/internal/repository"
	"job-portal/internal/search"

	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

const (
	MaxListLimit = 100
	lockWait     = 300 * time.Millisecond
)

type JobListParams struct {
	Query           string
	Location        string
	Category        string
	JobType         job.Type
	ExperienceLevel job.ExperienceLevel
	LocationType    job.LocationType
	Sort            search.SortKey
	Limit           int
	Offset          int
}

type JobListResult struct {
	Items  []job.Job
	Total  int
	Limit  int
	Offset int
}

type JobListUsecase interface {
	List(ctx context.Context, params JobListParams) (JobListResult, error)
	Locations(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) (map[string]int, error)
}

type JobList struct {
	jobs  repository.JobRepository
	cache SearchCache
	log   log.FieldLogger
}

func NewJobListUsecase(jobs repository.JobRepository, c SearchCache, l log.FieldLogger) *JobList {
	if l == nil {
		l = logger.Discard()
	}
	return &JobList{jobs: jobs, cache: c, log: l}
}

func (u *JobList) validate(p JobListParams) (JobListParams, error) {
	if p.Limit < 0 || p.Limit > MaxListLimit {
		return p, invalid("limit", "max")
	}
	if p.Offset < 0 {
		return p, invalid("offset", "min")
	}
	if p.JobType != "" && !p.JobType.Valid() {
		return p, invalid("type", "oneof")
	}
	if p.ExperienceLevel != "" && !p.ExperienceLevel.Valid() {
		return p, invalid("experience", "oneof")
	}
	if p.LocationType != "" && !p.LocationType.Valid() {
		return p, invalid("locationType", "oneof")
	}
	if p.Sort == search.SortNone {
		p.Sort = search.SortNewest
	}
	if _, ok := search.ParseSortKey(string(p.Sort)); !ok {
		return p, invalid("sort", "oneof")
	}
	// the cache key is built from these same values
	p.Query = normalizeSearchValue(p.Query)
	p.Location = normalizeSearchValue(p.Location)
	p.Category = strings.TrimSpace(p.Category)
	return p, nil
}

// List returns active jobs matching params. The full filtered list is cached
// per search; limit and offset slice it afterwards.
func (u *JobList) List(ctx context.Context, params JobListParams) (JobListResult, error) {
	p, err := u.validate(params)
	if err != nil {
		return JobListResult{}, err
	}

	// Read before the DB so a fill that races an invalidation lands under a
	// generation nobody reads any more.
	gen, useCache := u.generation(ctx)
	hash := jobSearchHash(p, gen)
	key, lockKey := cache.JobSearchKey(hash), cache.JobLockKey(hash)

	if items, ok := u.cached(ctx, key, useCache); ok {
		return page(items, p), nil
	}

	lockAcquired := false
	if useCache {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
		switch {
		case err == nil && ok:
			lockAcquired = true
		case err == nil && !ok:
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			select {
			case <-ctx.Done():
				return JobListResult{}, ctx.Err()
			case <-time.After(lockWait + jitter):
			}
			if items, ok := u.cached(ctx, key, useCache); ok {
				return page(items, p), nil
			}
		}
	}

	rows, err := u.jobs.ListActive(ctx, repository.JobFilter{
		JobType:         p.JobType,
		ExperienceLevel: p.ExperienceLevel,
		LocationType:    p.LocationType,
	})
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error("list active jobs failed")
		return JobListResult{}, ErrInternal
	}

	items := search.Filter(rows, search.Criteria{
		Query:    p.Query,
		Location: p.Location,
		Category: p.Category,
		Sort:     p.Sort,
	})

	if useCache {
		if err := u.cache.SetJSON(ctx, key, items, 0); err != nil {
			u.log.WithField("key", key).WithError(err).Debug("search cache set failed")
		}
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}
	return page(items, p), nil
}

func (u *JobList) generation(ctx context.Context) (int64, bool) {
	if u.cache == nil {
		return 0, false
	}
	gen, err := u.cache.JobListingsGeneration(ctx)
	if err != nil {
		u.log.WithError(err).Debug("search cache generation read failed")
		return 0, false
	}
	return gen, true
}

func (u *JobList) cached(ctx context.Context, key string, useCache bool) ([]job.Job, bool) {
	if !useCache {
		return nil, false
	}
	var items []job.Job
	hit, err := u.cache.GetJSON(ctx, key, &items)
	if err == nil && hit {
		metrics.SearchCacheLookups.WithLabelValues("hit").Inc()
		return items, true
	}
	metrics.SearchCacheLookups.WithLabelValues("miss").Inc()
	return nil, false
}

func page(items []job.Job, p JobListParams) JobListResult {
	res := JobListResult{Total: len(items), Limit: p.Limit, Offset: p.Offset}
	start := min(p.Offset, len(items))
	end := len(items)
	if p.Limit > 0 {
		end = min(start+p.Limit, len(items))
	}
	res.Items = items[start:end]
	return res
}

func (u *JobList) Locations(ctx context.Context) ([]string, error) {
	rows, err := u.jobs.ListActive(ctx, repository.JobFilter{})
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error("list job locations failed")
		return []string{}, nil
	}
	return search.Locations(rows), nil
}

func (u *JobList) Categories(ctx context.Context) (map[string]int, error) {
	rows, err := u.jobs.ListActive(ctx, repository.JobFilter{})
	if err != nil {
		u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeDB).WithError(err).Error("list job categories failed")
		return search.CategoryCounts(nil), nil
	}
	return search.CategoryCounts(rows), nil
}

// SubscribeInvalidation drops cached searches whenever listings may have changed.
func (u *JobList) SubscribeInvalidation(bus EventBus.Bus) error {
	invalidate := func() {
		if u.cache == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.cache.InvalidateJobListings(ctx); err != nil {
			u.log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).WithError(err).Warn("search cache invalidation failed")
		}
	}
	return events.Subscribe(bus, map[string]any{
		events.JobPublishedTopic: func(events.JobPublished) { invalidate() },
		events.JobChangedTopic:   func(events.JobChanged) { invalidate() },
	})
}
