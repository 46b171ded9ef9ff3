package usecase

import (
	"context"
	"strings"
	"time"

	"job-portal/internal/infrastructure/cache"
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidateJobListings(ctx context.Context) error
	JobListingsGeneration(ctx context.Context) (int64, error)
}

type jobSearchCacheKeyInput struct {
	Generation      int64  `json:"gen"`
	Query           string `json:"q"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	JobType         string `json:"job_type"`
	ExperienceLevel string `json:"experience_level"`
	LocationType    string `json:"location_type"`
	Sort            string `json:"sort"`
}

func normalizeSearchValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// jobSearchHash ignores paging so every page of one search shares an entry.
func jobSearchHash(p JobListParams, gen int64) string {
	return cache.Hash(jobSearchCacheKeyInput{
		Generation:      gen,
		Query:           normalizeSearchValue(p.Query),
		Location:        normalizeSearchValue(p.Location),
		Category:        strings.TrimSpace(p.Category),
		JobType:         string(p.JobType),
		ExperienceLevel: string(p.ExperienceLevel),
		LocationType:    string(p.LocationType),
		Sort:            string(p.Sort),
	})
}
