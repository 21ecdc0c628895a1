package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"rapidjobs_backend/internal/models"
	"rapidjobs_backend/internal/repositories"
	"rapidjobs_backend/pkg/pagination"
)

// In-memory repository fakes with the same error semantics as the GORM
// implementations, so service behavior is exercised without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Phone == user.Phone {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Phone == phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Save(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) UpdateDeviceToken(_ context.Context, userID string, token *string) error {
	return f.update(userID, func(u *models.User) { u.DeviceToken = token })
}

func (f *fakeUserRepo) UpdateNotificationsEnabled(_ context.Context, userID string, enabled bool) error {
	return f.update(userID, func(u *models.User) { u.NotificationsEnabled = enabled })
}

func (f *fakeUserRepo) UpdateRefreshTokenHash(_ context.Context, userID, hash string) error {
	return f.update(userID, func(u *models.User) { u.RefreshTokenHash = hash })
}

func (f *fakeUserRepo) UpdateRating(_ context.Context, userID string, average float64, count int64) error {
	return f.update(userID, func(u *models.User) {
		u.AverageRating = average
		u.ReviewsCount = count
	})
}

func (f *fakeUserRepo) BroadcastDeviceTokens(_ context.Context, excludeUserID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tokens []string
	for _, u := range f.users {
		if u.ID == excludeUserID || !u.IsVerified || !u.NotificationsEnabled {
			continue
		}
		if u.DeviceToken != nil && *u.DeviceToken != "" {
			tokens = append(tokens, *u.DeviceToken)
		}
	}
	sort.Strings(tokens)
	return tokens, nil
}

func (f *fakeUserRepo) update(userID string, fn func(*models.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	fn(u)
	return nil
}

type fakeJobRepo struct {
	mu    sync.Mutex
	jobs  map[string]*models.Job
	users *fakeUserRepo
}

func newFakeJobRepo(users *fakeUserRepo) *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job), users: users}
}

func (f *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	clone := *job
	f.jobs[job.ID] = &clone
	return nil
}

func (f *fakeJobRepo) FindByID(_ context.Context, id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	return f.withPreloads(job), nil
}

func (f *fakeJobRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobRepo) Search(_ context.Context, filter repositories.JobFilter) ([]models.Job, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.Job
	for _, job := range f.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.Category != "" && job.Category != filter.Category {
			continue
		}
		matched = append(matched, *job)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].PostedAt.After(matched[j].PostedAt)
	})

	total := int64(len(matched))
	p := filter.Paging.Normalize()
	start := p.Offset()
	if start > len(matched) {
		return []models.Job{}, total, nil
	}
	end := start + p.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeJobRepo) Complete(_ context.Context, jobID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[jobID]
	if !ok || job.Status != models.JobStatusApproved {
		return repositories.ErrJobStatusChanged
	}
	job.Status = models.JobStatusCompleted
	return nil
}

func (f *fakeJobRepo) FindParticipating(_ context.Context, userID string, statuses []models.JobStatus) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	wanted := make(map[models.JobStatus]bool)
	for _, s := range statuses {
		wanted[s] = true
	}

	var jobs []models.Job
	for _, job := range f.jobs {
		participant := job.OwnerID == userID ||
			(job.AssigneeID != nil && *job.AssigneeID == userID)
		if participant && wanted[job.Status] {
			jobs = append(jobs, *f.withPreloads(job))
		}
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].PostedAt.After(jobs[j].PostedAt)
	})
	return jobs, nil
}

func (f *fakeJobRepo) Titles(_ context.Context, ids []string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	titles := make(map[string]string, len(ids))
	for _, id := range ids {
		if job, ok := f.jobs[id]; ok {
			titles[id] = job.Title
		}
	}
	return titles, nil
}

func (f *fakeJobRepo) withPreloads(job *models.Job) *models.Job {
	clone := *job
	if f.users != nil {
		if owner, ok := f.users.users[job.OwnerID]; ok {
			o := *owner
			clone.Owner = &o
		}
		if job.AssigneeID != nil {
			if assignee, ok := f.users.users[*job.AssigneeID]; ok {
				a := *assignee
				clone.Assignee = &a
			}
		}
	}
	return &clone
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.Request
	jobs     *fakeJobRepo
}

func newFakeRequestRepo(jobs *fakeJobRepo) *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.Request), jobs: jobs}
}

func (f *fakeRequestRepo) Create(_ context.Context, req *models.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.JobID == req.JobID && r.UserID == req.UserID {
			return repositories.ErrRequestAlreadyExists
		}
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	clone := *req
	f.requests[req.ID] = &clone
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id string) (*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, repositories.ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (f *fakeRequestRepo) FindByJobAndUser(_ context.Context, jobID, userID string) (*models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.JobID == jobID && r.UserID == userID {
			clone := *r
			return &clone, nil
		}
	}
	return nil, repositories.ErrRequestNotFound
}

func (f *fakeRequestRepo) ListByJob(_ context.Context, jobID string) ([]models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var requests []models.Request
	for _, r := range f.requests {
		if r.JobID == jobID {
			requests = append(requests, *r)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].RequestedAt.Before(requests[j].RequestedAt)
	})
	return requests, nil
}

func (f *fakeRequestRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var requests []models.Request
	for _, r := range f.requests {
		if r.OwnerPostID == ownerID {
			requests = append(requests, *r)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].RequestedAt.After(requests[j].RequestedAt)
	})
	return requests, nil
}

func (f *fakeRequestRepo) Approve(_ context.Context, req *models.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.requests[req.ID]
	if !ok || stored.Status != models.RequestStatusPending {
		return repositories.ErrRequestNotPending
	}

	f.jobs.mu.Lock()
	defer f.jobs.mu.Unlock()
	job, ok := f.jobs.jobs[req.JobID]
	if !ok || job.Status != models.JobStatusOpen {
		return repositories.ErrJobNotOpen
	}

	stored.Status = models.RequestStatusApproved
	job.Status = models.JobStatusApproved
	assignee := req.UserID
	job.AssigneeID = &assignee
	return nil
}

func (f *fakeRequestRepo) Reject(_ context.Context, requestID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.requests[requestID]
	if !ok || stored.Status != models.RequestStatusPending {
		return repositories.ErrRequestNotPending
	}
	stored.Status = models.RequestStatusRejected
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review
	users   *fakeUserRepo
}

func newFakeReviewRepo(users *fakeUserRepo) *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review), users: users}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.JobID == review.JobID && r.ReviewerID == review.ReviewerID {
			return repositories.ErrReviewAlreadyExists
		}
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	clone := *review
	f.reviews[review.ID] = &clone

	var sum, count int64
	for _, r := range f.reviews {
		if r.RevieweeID == review.RevieweeID {
			sum += int64(r.Rating)
			count++
		}
	}
	return f.users.update(review.RevieweeID, func(u *models.User) {
		u.AverageRating = float64(sum) / float64(count)
		u.ReviewsCount = count
	})
}

func (f *fakeReviewRepo) ListByReviewee(_ context.Context, userID string) ([]models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var reviews []models.Review
	for _, r := range f.reviews {
		if r.RevieweeID == userID {
			reviews = append(reviews, *r)
		}
	}
	return reviews, nil
}

func (f *fakeReviewRepo) ReviewedJobIDs(_ context.Context, reviewerID string, jobIDs []string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		wanted[id] = true
	}
	reviewed := make(map[string]bool)
	for _, r := range f.reviews {
		if r.ReviewerID == reviewerID && wanted[r.JobID] {
			reviewed[r.JobID] = true
		}
	}
	return reviewed, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*models.Message
	failNext bool
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *models.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return context.DeadlineExceeded
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	clone := *msg
	f.messages = append(f.messages, &clone)
	return nil
}

func (f *fakeMessageRepo) History(_ context.Context, jobID, userA, userB string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var history []models.Message
	for _, m := range f.messages {
		if m.JobID != jobID {
			continue
		}
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			history = append(history, *m)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})
	return history, nil
}

func (f *fakeMessageRepo) ListForUser(_ context.Context, userID string) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.Message
	for _, m := range f.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			list = append(list, *m)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	return list, nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	clone := *n
	f.notifications = append(f.notifications, &clone)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string, p pagination.Params) ([]models.Notification, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			list = append(list, *n)
		}
	}
	total := int64(len(list))
	p = p.Normalize()
	start := p.Offset()
	if start > len(list) {
		return []models.Notification{}, total, nil
	}
	end := start + p.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], total, nil
}

func (f *fakeNotificationRepo) UnreadCount(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, userID, notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

// recordingDispatcher captures effects synchronously so tests can assert on
// them.
type recordingDispatcher struct {
	mu      sync.Mutex
	effects []Effect
}

func (d *recordingDispatcher) Dispatch(effects []Effect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.effects = append(d.effects, effects...)
}

func (d *recordingDispatcher) pushes() []PushEffect {
	d.mu.Lock()
	defer d.mu.Unlock()
	var pushes []PushEffect
	for _, e := range d.effects {
		if p, ok := e.(PushEffect); ok {
			pushes = append(pushes, p)
		}
	}
	return pushes
}

func (d *recordingDispatcher) events() []EventEffect {
	d.mu.Lock()
	defer d.mu.Unlock()
	var events []EventEffect
	for _, e := range d.effects {
		if ev, ok := e.(EventEffect); ok {
			events = append(events, ev)
		}
	}
	return events
}

func (d *recordingDispatcher) eventNames() []string {
	var names []string
	for _, e := range d.events() {
		names = append(names, e.Event)
	}
	return names
}
