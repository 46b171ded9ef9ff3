package search

import (
	"sort"
	"strings"

	"job-portal/internal/domain/job"
)

type SortKey string

const (
	SortNone   SortKey = ""
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortSalary SortKey = "salary"
	SortTitle  SortKey = "title"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortNewest, SortOldest, SortSalary, SortTitle:
		return k, true
	}
	return SortNone, false
}

// Sort returns a sorted copy. Ties keep their input order; SortNone keeps it entirely.
func Sort(jobs []job.Job, key SortKey) []job.Job {
	out := make([]job.Job, len(jobs))
	copy(out, jobs)

	var less func(a, b job.Job) bool
	switch key {
	case SortNewest:
		less = func(a, b job.Job) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortOldest:
		less = func(a, b job.Job) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortSalary:
		less = func(a, b job.Job) bool {
			switch {
			case a.SalaryMax == nil:
				return false
			case b.SalaryMax == nil:
				return true
			default:
				return *a.SalaryMax > *b.SalaryMax
			}
		}
	case SortTitle:
		less = func(a, b job.Job) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func sortStrings(s []string) {
	sort.Strings(s)
}
