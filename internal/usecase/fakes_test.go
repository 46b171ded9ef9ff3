package usecase

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"job-portal/internal/domain/alert"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/company"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/notification"
	"job-portal/internal/domain/policy"
	"job-portal/internal/domain/profile"
	"job-portal/internal/domain/savedjob"
	"job-portal/internal/domain/user"
	"job-portal/internal/repository"

	"github.com/google/uuid"
)

// memDB backs every in-memory repository used by the usecase tests.
type memDB struct {
	mu            sync.Mutex
	users         map[uuid.UUID]user.User
	profiles      map[uuid.UUID]profile.Profile
	companies     map[uuid.UUID]company.Company
	jobs          map[uuid.UUID]job.Job
	applications  map[uuid.UUID]application.Application
	saved         map[[2]uuid.UUID]time.Time
	alerts        map[uuid.UUID]alert.Alert
	notifications map[uuid.UUID]notification.Notification

	// failWith makes every job and application call fail when set.
	failWith error
}

func newMemDB() *memDB {
	return &memDB{
		users:         map[uuid.UUID]user.User{},
		profiles:      map[uuid.UUID]profile.Profile{},
		companies:     map[uuid.UUID]company.Company{},
		jobs:          map[uuid.UUID]job.Job{},
		applications:  map[uuid.UUID]application.Application{},
		saved:         map[[2]uuid.UUID]time.Time{},
		alerts:        map[uuid.UUID]alert.Alert{},
		notifications: map[uuid.UUID]notification.Notification{},
	}
}

func (m *memDB) addProfile(role profile.UserType) profile.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := profile.Profile{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		UserType:   role,
		Email:      string(role) + "@example.com",
		Visibility: profile.VisibilityPublic,
	}
	m.profiles[p.ID] = p
	return p
}

func (m *memDB) addCompany(owner uuid.UUID, name string) company.Company {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := company.Company{ID: uuid.New(), Name: name, CreatedBy: owner, CreatedAt: time.Now()}
	m.companies[c.ID] = c
	return c
}

func (m *memDB) addJob(co company.Company, title string, active bool, created time.Time) job.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	j := job.Job{
		ID:              uuid.New(),
		CompanyID:       co.ID,
		PostedBy:        co.CreatedBy,
		Title:           title,
		Description:     title + " role",
		JobType:         job.TypeFullTime,
		ExperienceLevel: job.ExperienceMid,
		LocationType:    job.LocationOnsite,
		SalaryCurrency:  job.DefaultCurrency,
		IsActive:        active,
		CreatedAt:       created,
		UpdatedAt:       created,
	}
	m.jobs[j.ID] = m.withCompany(j)
	return m.jobs[j.ID]
}

func (m *memDB) withCompany(j job.Job) job.Job {
	if c, ok := m.companies[j.CompanyID]; ok {
		j.Company = &job.CompanyRef{ID: c.ID, Name: c.Name, CreatedBy: c.CreatedBy}
	}
	return j
}

func actorOf(p profile.Profile) policy.Actor { return policy.ActorFrom(&p) }

func ptr[T any](v T) *T { return &v }

func newestFirst(jobs []job.Job) []job.Job {
	slices.SortFunc(jobs, func(a, b job.Job) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return jobs
}

type memUsers struct{ *memDB }

var _ repository.UserRepository = memUsers{}

func (r memUsers) CreateWithProfile(_ context.Context, u user.User, p profile.Profile) (user.User, profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.User{}, profile.Profile{}, user.ErrEmailTaken
		}
	}
	u.ID = uuid.New()
	p.ID = uuid.New()
	p.UserID = u.ID
	r.users[u.ID] = u
	r.profiles[p.ID] = p
	return u, p, nil
}

func (r memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

type memProfiles struct{ *memDB }

var _ repository.ProfileRepository = memProfiles{}

func (r memProfiles) GetByID(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (r memProfiles) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (r memProfiles) Update(_ context.Context, p profile.Profile) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	r.profiles[p.ID] = p
	return p, nil
}

func (r memProfiles) OnboardEmployer(_ context.Context, p profile.Profile, c company.Company) (profile.Profile, company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; !ok {
		return profile.Profile{}, company.Company{}, profile.ErrNotFound
	}
	for _, existing := range r.companies {
		if existing.CreatedBy == p.ID {
			return profile.Profile{}, company.Company{}, company.ErrAlreadyExists
		}
	}
	c.ID = uuid.New()
	c.CreatedBy = p.ID
	r.profiles[p.ID] = p
	r.companies[c.ID] = c
	return p, c, nil
}

type memCompanies struct{ *memDB }

var _ repository.CompanyRepository = memCompanies{}

func (r memCompanies) Create(_ context.Context, c company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.CreatedBy == c.CreatedBy {
			return company.Company{}, company.ErrAlreadyExists
		}
	}
	c.ID = uuid.New()
	r.companies[c.ID] = c
	return c, nil
}

func (r memCompanies) Update(_ context.Context, c company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return company.Company{}, company.ErrNotFound
	}
	r.companies[c.ID] = c
	return c, nil
}

func (r memCompanies) GetByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, company.ErrNotFound
	}
	return c, nil
}

func (r memCompanies) GetByCreator(_ context.Context, profileID uuid.UUID) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.CreatedBy == profileID {
			return c, nil
		}
	}
	return company.Company{}, company.ErrNotFound
}

func (r memCompanies) List(_ context.Context, f repository.CompanyFilter) ([]company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []company.Company{}
	for _, c := range r.companies {
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b company.Company) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r memCompanies) Industries(context.Context) ([]string, error) { return []string{}, nil }

type memJobs struct{ *memDB }

var _ repository.JobRepository = memJobs{}

func (r memJobs) Create(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return job.Job{}, r.failWith
	}
	j.ID = uuid.New()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	if j.IsActive {
		j.PublishedAt = ptr(j.CreatedAt)
	}
	r.jobs[j.ID] = r.withCompany(j)
	return r.jobs[j.ID], nil
}

func (r memJobs) Update(_ context.Context, j job.Job) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[j.ID]; !ok {
		return job.Job{}, job.ErrNotFound
	}
	r.jobs[j.ID] = r.withCompany(j)
	return r.jobs[j.ID], nil
}

func (r memJobs) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	j, ok := r.jobs[id]
	if !ok {
		return job.ErrNotFound
	}
	if active && !j.IsActive {
		j.PublishedAt = ptr(time.Now())
	}
	j.IsActive = active
	r.jobs[id] = j
	return nil
}

func (r memJobs) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return job.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r memJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (r memJobs) IncrementViews(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.jobs[id]
	j.ViewCount++
	r.jobs[id] = j
	return nil
}

func (r memJobs) ListActive(_ context.Context, f repository.JobFilter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := []job.Job{}
	for _, j := range r.jobs {
		switch {
		case !j.IsActive:
		case f.JobType != "" && j.JobType != f.JobType:
		case f.ExperienceLevel != "" && j.ExperienceLevel != f.ExperienceLevel:
		case f.LocationType != "" && j.LocationType != f.LocationType:
		case f.PublishedAfter != nil && !j.ListedAt().After(*f.PublishedAfter):
		default:
			out = append(out, j)
		}
	}
	return newestFirst(out), nil
}

func (r memJobs) ListRecentActive(ctx context.Context, limit int) ([]job.Job, error) {
	all, err := r.ListActive(ctx, repository.JobFilter{})
	if err != nil {
		return nil, err
	}
	return all[:min(limit, len(all))], nil
}

func (r memJobs) ListByCompany(_ context.Context, companyID uuid.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []job.Job{}
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			out = append(out, j)
		}
	}
	return newestFirst(out), nil
}

type memApplications struct{ *memDB }

var _ repository.ApplicationRepository = memApplications{}

func (r memApplications) Create(_ context.Context, a application.Application) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.JobID == a.JobID && existing.ApplicantID == a.ApplicantID {
			return application.Application{}, application.ErrAlreadyApplied
		}
	}
	j, ok := r.jobs[a.JobID]
	if !ok {
		return application.Application{}, job.ErrNotFound
	}
	j.ApplicationCount++
	r.jobs[j.ID] = j

	a.ID = uuid.New()
	a.AppliedAt = time.Now()
	a.Job = r.jobRef(j)
	r.applications[a.ID] = a
	return a, nil
}

func (r memApplications) jobRef(j job.Job) *application.JobRef {
	ref := &application.JobRef{Title: j.Title, Location: j.Location, PostedBy: j.PostedBy}
	if j.Company != nil {
		ref.CompanyName = j.Company.Name
		ref.CompanyCreatedBy = j.Company.CreatedBy
	}
	return ref
}

func (r memApplications) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (r memApplications) Exists(_ context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return false, r.failWith
	}
	for _, a := range r.applications {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			return true, nil
		}
	}
	return false, nil
}

func (r memApplications) filter(keep func(application.Application) bool) []application.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []application.Application{}
	for _, a := range r.applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b application.Application) int { return b.AppliedAt.Compare(a.AppliedAt) })
	return out
}

func (r memApplications) ListByApplicant(_ context.Context, applicantID uuid.UUID, limit int) ([]application.Application, error) {
	out := r.filter(func(a application.Application) bool { return a.ApplicantID == applicantID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memApplications) CountByApplicant(ctx context.Context, applicantID uuid.UUID) (int, error) {
	out, err := r.ListByApplicant(ctx, applicantID, 0)
	return len(out), err
}

func (r memApplications) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	return r.filter(func(a application.Application) bool { return a.JobID == jobID }), nil
}

func (r memApplications) CountPendingForJobs(_ context.Context, jobIDs []uuid.UUID) (int, error) {
	return len(r.filter(func(a application.Application) bool {
		return a.Status == application.StatusPending && slices.Contains(jobIDs, a.JobID)
	})), nil
}

func (r memApplications) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status, notes *string) (application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = status
	if notes != nil {
		a.Notes = notes
	}
	a.UpdatedAt = time.Now()
	r.applications[id] = a
	return a, nil
}

type memSaved struct{ *memDB }

var _ repository.SavedJobRepository = memSaved{}

func (r memSaved) Exists(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.saved[[2]uuid.UUID{userID, jobID}]
	return ok, nil
}

func (r memSaved) Get(_ context.Context, userID, jobID uuid.UUID) (savedjob.SavedJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	at, ok := r.saved[[2]uuid.UUID{userID, jobID}]
	if !ok {
		return savedjob.SavedJob{}, savedjob.ErrNotFound
	}
	return savedjob.SavedJob{ID: uuid.New(), UserID: userID, JobID: jobID, SavedAt: at}, nil
}

func (r memSaved) Save(_ context.Context, userID, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved[[2]uuid.UUID{userID, jobID}] = time.Now()
	return nil
}

func (r memSaved) Remove(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]uuid.UUID{userID, jobID}
	_, ok := r.saved[key]
	delete(r.saved, key)
	return ok, nil
}

func (r memSaved) ListByUser(_ context.Context, userID uuid.UUID) ([]savedjob.SavedJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []savedjob.SavedJob{}
	for key, at := range r.saved {
		if key[0] != userID {
			continue
		}
		j, ok := r.jobs[key[1]]
		if !ok || !j.IsActive {
			continue
		}
		out = append(out, savedjob.SavedJob{ID: uuid.New(), UserID: userID, JobID: key[1], SavedAt: at, Job: &j})
	}
	return out, nil
}

func (r memSaved) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	out, err := r.ListByUser(ctx, userID)
	return len(out), err
}

type memAlerts struct{ *memDB }

var _ repository.AlertRepository = memAlerts{}

func (r memAlerts) Create(_ context.Context, a alert.Alert) (alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.New()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.alerts[a.ID] = a
	return a, nil
}

func (r memAlerts) Update(_ context.Context, a alert.Alert) (alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.alerts[a.ID]; !ok {
		return alert.Alert{}, alert.ErrNotFound
	}
	r.alerts[a.ID] = a
	return a, nil
}

func (r memAlerts) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.alerts[id]; !ok {
		return alert.ErrNotFound
	}
	delete(r.alerts, id)
	return nil
}

func (r memAlerts) GetByID(_ context.Context, id uuid.UUID) (alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[id]
	if !ok {
		return alert.Alert{}, alert.ErrNotFound
	}
	return a, nil
}

func (r memAlerts) ListByUser(_ context.Context, userID uuid.UUID) ([]alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []alert.Alert{}
	for _, a := range r.alerts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAlerts) ListActive(context.Context) ([]alert.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []alert.Alert{}
	for _, a := range r.alerts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAlerts) MarkSent(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.alerts[id]
	a.LastSent = &at
	r.alerts[id] = a
	return nil
}

type memNotifications struct{ *memDB }

var _ repository.NotificationRepository = memNotifications{}

func (r memNotifications) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	r.notifications[n.ID] = n
	return n, nil
}

func (r memNotifications) GetByID(_ context.Context, id uuid.UUID) (notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return notification.Notification{}, notification.ErrNotFound
	}
	return n, nil
}

func (r memNotifications) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []notification.Notification{}
	for _, n := range r.notifications {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r memNotifications) MarkRead(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.notifications[id]
	if !ok {
		return notification.ErrNotFound
	}
	n.IsRead = true
	r.notifications[id] = n
	return nil
}

func (r memNotifications) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, item := range r.notifications {
		if item.UserID == userID && !item.IsRead {
			item.IsRead = true
			r.notifications[id] = item
			n++
		}
	}
	return n, nil
}

// memCache is a SearchCache over a plain map.
type memCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated int
	generation  int64
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key string, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

func (c *memCache) InvalidateJobListings(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	for k := range c.data {
		if strings.HasPrefix(k, "jobs:") {
			delete(c.data, k)
		}
	}
	c.invalidated++
	return nil
}

func (c *memCache) JobListingsGeneration(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, nil
}
