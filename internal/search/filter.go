// Package search narrows and orders an in-memory list of jobs.
package search

import (
	"strings"

	"job-portal/internal/domain/job"

	"github.com/samber/lo"
)

type Criteria struct {
	Query    string
	Location string
	JobType  job.Type
	Category string
	Sort     SortKey
}

// Empty reports whether the criteria would keep every job.
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.Query) == "" &&
		strings.TrimSpace(c.Location) == "" &&
		c.JobType == "" &&
		strings.TrimSpace(c.Category) == ""
}

// Categories maps a browse category to the keywords looked for in a job's
// title and description.
var Categories = map[string][]string{
	"Technology": {"software", "developer", "engineer", "tech", "programming"},
	"Business":   {"business", "manager", "analyst", "consultant"},
	"Sales":      {"sales", "account", "business development"},
	"Design":     {"design", "ui", "ux", "graphic", "creative"},
	"Marketing":  {"marketing", "seo", "content", "social media"},
	"HR":         {"hr", "human resources", "recruiter", "talent"},
	"Healthcare": {"health", "medical", "nurse", "doctor"},
	"Security":   {"security", "cyber", "compliance"},
}

// CategoryNames lists the known categories in display order.
var CategoryNames = []string{
	"Technology", "Business", "Sales", "Design", "Marketing", "HR", "Healthcare", "Security",
}

// Filter applies the criteria as sequential passes and then sorts. The input
// slice is left untouched.
func Filter(jobs []job.Job, c Criteria) []job.Job {
	out := make([]job.Job, len(jobs))
	copy(out, jobs)

	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		out = lo.Filter(out, func(j job.Job, _ int) bool {
			return containsFold(j.Title, q) ||
				containsFold(j.Description, q) ||
				containsFold(j.LocationText(), q)
		})
	}

	if loc := strings.ToLower(strings.TrimSpace(c.Location)); loc != "" {
		out = lo.Filter(out, func(j job.Job, _ int) bool {
			return containsFold(j.LocationText(), loc)
		})
	}

	if c.JobType != "" {
		out = lo.Filter(out, func(j job.Job, _ int) bool {
			return j.JobType == c.JobType
		})
	}

	if cat := strings.TrimSpace(c.Category); cat != "" {
		out = lo.Filter(out, func(j job.Job, _ int) bool {
			return MatchesCategory(j, cat)
		})
	}

	return Sort(out, c.Sort)
}

// MatchesCategory is false for unknown categories.
func MatchesCategory(j job.Job, category string) bool {
	keywords, ok := Categories[category]
	if !ok {
		return false
	}
	text := strings.ToLower(j.Title + " " + j.Description)
	return lo.SomeBy(keywords, func(k string) bool {
		return strings.Contains(text, k)
	})
}

// CategoryCounts counts how many jobs fall into each known category.
func CategoryCounts(jobs []job.Job) map[string]int {
	counts := make(map[string]int, len(Categories))
	for _, name := range CategoryNames {
		counts[name] = lo.CountBy(jobs, func(j job.Job) bool {
			return MatchesCategory(j, name)
		})
	}
	return counts
}

// Locations returns the distinct non-empty job locations, sorted.
func Locations(jobs []job.Job) []string {
	locs := lo.Uniq(lo.FilterMap(jobs, func(j job.Job, _ int) (string, bool) {
		loc := strings.TrimSpace(j.LocationText())
		return loc, loc != ""
	}))
	sortStrings(locs)
	return locs
}

// lowerNeedle must already be lower case.
func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
