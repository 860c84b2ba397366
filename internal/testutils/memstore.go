// Package testutils provides an in-memory Store for service and handler tests.
package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

type memState struct {
	users       map[int64]models.User
	courses     map[int64]models.Course
	chapters    map[int64]models.Chapter
	lessons     map[int64]models.Lesson
	enrollments map[int64]models.Enrollment
	payments    map[string]models.Payment
	nextID      int64
}

func (s *memState) clone() *memState {
	c := &memState{
		users:       make(map[int64]models.User, len(s.users)),
		courses:     make(map[int64]models.Course, len(s.courses)),
		chapters:    make(map[int64]models.Chapter, len(s.chapters)),
		lessons:     make(map[int64]models.Lesson, len(s.lessons)),
		enrollments: make(map[int64]models.Enrollment, len(s.enrollments)),
		payments:    make(map[string]models.Payment, len(s.payments)),
		nextID:      s.nextID,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.courses {
		c.courses[k] = v
	}
	for k, v := range s.chapters {
		c.chapters[k] = v
	}
	for k, v := range s.lessons {
		c.lessons[k] = v
	}
	for k, v := range s.enrollments {
		c.enrollments[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	return c
}

// MemoryStore implements repositories.Store in memory. WithTx restores the
// previous state when fn fails, mirroring a rolled back transaction.
type MemoryStore struct {
	mu    sync.Mutex
	state *memState
	fail  map[string]error
	inTx  bool
}

var _ repositories.Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: (&memState{}).clone(),
		fail:  map[string]error{},
	}
}

// FailOn makes the named operation (e.g. "courses.DeleteByIDs") return err
func (m *MemoryStore) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[op] = err
}

func (m *MemoryStore) check(op string) error {
	return m.fail[op]
}

func (m *MemoryStore) id() int64 {
	m.state.nextID++
	return m.state.nextID
}

func (m *MemoryStore) Users() repositories.UserRepository             { return memUsers{m} }
func (m *MemoryStore) Courses() repositories.CourseRepository         { return memCourses{m} }
func (m *MemoryStore) Enrollments() repositories.EnrollmentRepository { return memEnrollments{m} }
func (m *MemoryStore) Payments() repositories.PaymentRepository       { return memPayments{m} }

// WithTx snapshots the state and restores it when fn returns an error
func (m *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	m.mu.Lock()
	if m.inTx {
		m.mu.Unlock()
		return fn(ctx, m)
	}
	snapshot := m.state.clone()
	m.inTx = true
	m.mu.Unlock()

	err := fn(ctx, m)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inTx = false
	if err != nil {
		m.state = snapshot
	}
	return err
}

// Counts reports how many rows each table holds
func (m *MemoryStore) Counts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int{
		"users":       len(m.state.users),
		"courses":     len(m.state.courses),
		"chapters":    len(m.state.chapters),
		"lessons":     len(m.state.lessons),
		"enrollments": len(m.state.enrollments),
		"payments":    len(m.state.payments),
	}
}

// References reports whether any row still points at userID, directly or through one of its courses
func (m *MemoryStore) References(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	owned := map[int64]bool{}
	for _, c := range m.state.courses {
		if c.UserID == userID {
			owned[c.ID] = true
		}
	}
	if len(owned) > 0 {
		return true
	}
	for _, e := range m.state.enrollments {
		if e.UserID == userID || owned[e.CourseID] {
			return true
		}
	}
	for _, p := range m.state.payments {
		if p.UserID == userID || owned[p.CourseID] {
			return true
		}
	}
	_, exists := m.state.users[userID]
	return exists
}

// --- users ---

type memUsers struct{ m *MemoryStore }

func (r memUsers) unique(u *models.User) error {
	for _, other := range r.m.state.users {
		if other.ID == u.ID {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
		if other.Username == u.Username {
			return apperrors.ErrUsernameTaken
		}
	}
	return nil
}

func (r memUsers) Create(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("users.Create"); err != nil {
		return err
	}
	if err := r.unique(u); err != nil {
		return err
	}
	u.ID = r.m.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	stored.Courses, stored.Enrollments = nil, nil
	r.m.state.users[u.ID] = stored
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.state.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.state.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r memUsers) List(_ context.Context) ([]models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	users := make([]models.User, 0, len(r.m.state.users))
	for _, u := range r.m.state.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r memUsers) Update(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("users.Update"); err != nil {
		return err
	}
	current, ok := r.m.state.users[u.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if err := r.unique(u); err != nil {
		return err
	}
	current.Username, current.Email, current.FullName = u.Username, u.Email, u.FullName
	current.PhoneNumber, current.Password = u.PhoneNumber, u.Password
	current.ProfilePhoto, current.CoverPhoto = u.ProfilePhoto, u.CoverPhoto
	current.UpdatedAt = time.Now()
	u.UpdatedAt = current.UpdatedAt
	r.m.state.users[u.ID] = current
	return nil
}

func (r memUsers) UpdateRole(_ context.Context, id int64, role models.Role) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.state.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Role = role
	r.m.state.users[id] = u
	return nil
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("users.Delete"); err != nil {
		return err
	}
	if _, ok := r.m.state.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.m.state.users, id)
	return nil
}

// --- courses ---

type memCourses struct{ m *MemoryStore }

func int64Set(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (r memCourses) Create(_ context.Context, c *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("courses.Create"); err != nil {
		return err
	}
	if _, ok := r.m.state.users[c.UserID]; !ok {
		return apperrors.ErrUserNotFound
	}
	c.ID = r.m.id()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	stored.Chapters = nil
	r.m.state.courses[c.ID] = stored
	return nil
}

func (r memCourses) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.state.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return &c, nil
}

func (r memCourses) filter(keep func(models.Course) bool) []models.Course {
	courses := []models.Course{}
	for _, c := range r.m.state.courses {
		if keep(c) {
			courses = append(courses, c)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

func (r memCourses) List(_ context.Context, offset uint64, limit int) ([]models.Course, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	all := r.filter(func(models.Course) bool { return true })
	total := int64(len(all))
	if offset >= uint64(len(all)) {
		return []models.Course{}, total, nil
	}
	end := int(offset) + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r memCourses) ListByIDs(_ context.Context, ids []int64) ([]models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	set := int64Set(ids)
	return r.filter(func(c models.Course) bool { return set[c.ID] }), nil
}

func (r memCourses) ListByOwners(_ context.Context, ownerIDs []int64) ([]models.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("courses.ListByOwners"); err != nil {
		return nil, err
	}
	set := int64Set(ownerIDs)
	return r.filter(func(c models.Course) bool { return set[c.UserID] }), nil
}

func (r memCourses) Update(_ context.Context, c *models.Course) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	current, ok := r.m.state.courses[c.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	current.Title, current.Description = c.Title, c.Description
	current.CourseImg, current.CoverImg = c.CourseImg, c.CoverImg
	current.PreviewCourseURL, current.IsPublished, current.Price = c.PreviewCourseURL, c.IsPublished, c.Price
	current.UpdatedAt = time.Now()
	c.UpdatedAt = current.UpdatedAt
	r.m.state.courses[c.ID] = current
	return nil
}

func (r memCourses) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("courses.DeleteByIDs"); err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := r.m.state.courses[id]; ok {
			delete(r.m.state.courses, id)
			n++
		}
	}
	return n, nil
}

func (r memCourses) CreateChapter(_ context.Context, ch *models.Chapter) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.courses[ch.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	ch.ID = r.m.id()
	ch.CreatedAt = time.Now()
	stored := *ch
	stored.Lessons = nil
	r.m.state.chapters[ch.ID] = stored
	return nil
}

func (r memCourses) GetChapterByID(_ context.Context, id int64) (*models.Chapter, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ch, ok := r.m.state.chapters[id]
	if !ok {
		return nil, apperrors.ErrChapterNotFound
	}
	return &ch, nil
}

func (r memCourses) ListChapters(_ context.Context, courseIDs []int64) ([]models.Chapter, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	set := int64Set(courseIDs)
	chapters := []models.Chapter{}
	for _, ch := range r.m.state.chapters {
		if set[ch.CourseID] {
			chapters = append(chapters, ch)
		}
	}
	sort.Slice(chapters, func(i, j int) bool {
		if chapters[i].Position != chapters[j].Position {
			return chapters[i].Position < chapters[j].Position
		}
		return chapters[i].ID < chapters[j].ID
	})
	return chapters, nil
}

func (r memCourses) DeleteChaptersByCourseIDs(_ context.Context, courseIDs []int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("courses.DeleteChaptersByCourseIDs"); err != nil {
		return 0, err
	}
	set := int64Set(courseIDs)
	var n int64
	for id, ch := range r.m.state.chapters {
		if set[ch.CourseID] {
			delete(r.m.state.chapters, id)
			n++
		}
	}
	return n, nil
}

func (r memCourses) CreateLesson(_ context.Context, l *models.Lesson) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.chapters[l.ChapterID]; !ok {
		return apperrors.ErrChapterNotFound
	}
	l.ID = r.m.id()
	l.CreatedAt = time.Now()
	r.m.state.lessons[l.ID] = *l
	return nil
}

func (r memCourses) ListLessons(_ context.Context, courseIDs []int64) ([]models.Lesson, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	set := int64Set(courseIDs)
	lessons := []models.Lesson{}
	for _, l := range r.m.state.lessons {
		if set[l.CourseID] {
			lessons = append(lessons, l)
		}
	}
	sort.Slice(lessons, func(i, j int) bool {
		if lessons[i].Position != lessons[j].Position {
			return lessons[i].Position < lessons[j].Position
		}
		return lessons[i].ID < lessons[j].ID
	})
	return lessons, nil
}

func (r memCourses) DeleteLessonsByCourseIDs(_ context.Context, courseIDs []int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("courses.DeleteLessonsByCourseIDs"); err != nil {
		return 0, err
	}
	set := int64Set(courseIDs)
	var n int64
	for id, l := range r.m.state.lessons {
		if set[l.CourseID] {
			delete(r.m.state.lessons, id)
			n++
		}
	}
	return n, nil
}

// --- enrollments ---

type memEnrollments struct{ m *MemoryStore }

func (r memEnrollments) Create(_ context.Context, e *models.Enrollment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("enrollments.Create"); err != nil {
		return err
	}
	for _, other := range r.m.state.enrollments {
		if other.UserID == e.UserID && other.CourseID == e.CourseID {
			return apperrors.ErrEnrollmentExists
		}
	}
	_, userOK := r.m.state.users[e.UserID]
	_, courseOK := r.m.state.courses[e.CourseID]
	if !userOK || !courseOK {
		return apperrors.NewResourceNotFoundError("user or course does not exist")
	}
	e.ID = r.m.id()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	stored := *e
	stored.Course = nil
	r.m.state.enrollments[e.ID] = stored
	return nil
}

func (r memEnrollments) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e, ok := r.m.state.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return &e, nil
}

func (r memEnrollments) ListByUserIDs(_ context.Context, userIDs []int64) ([]models.Enrollment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	set := int64Set(userIDs)
	out := []models.Enrollment{}
	for _, e := range r.m.state.enrollments {
		if set[e.UserID] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memEnrollments) Update(_ context.Context, e *models.Enrollment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	current, ok := r.m.state.enrollments[e.ID]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	current.Progress, current.Status, current.IsEnrolled = e.Progress, e.Status, e.IsEnrolled
	current.UpdatedAt = time.Now()
	e.UpdatedAt = current.UpdatedAt
	r.m.state.enrollments[e.ID] = current
	return nil
}

func (r memEnrollments) Delete(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.enrollments[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(r.m.state.enrollments, id)
	return nil
}

func (r memEnrollments) DeleteByUserOrCourses(_ context.Context, userID int64, courseIDs []int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("enrollments.DeleteByUserOrCourses"); err != nil {
		return 0, err
	}
	set := int64Set(courseIDs)
	var n int64
	for id, e := range r.m.state.enrollments {
		if (userID > 0 && e.UserID == userID) || set[e.CourseID] {
			delete(r.m.state.enrollments, id)
			n++
		}
	}
	return n, nil
}

// --- payments ---

type memPayments struct{ m *MemoryStore }

func (r memPayments) Create(_ context.Context, p *models.Payment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("payments.Create"); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	r.m.state.payments[p.ID] = *p
	return nil
}

func (r memPayments) GetByID(_ context.Context, id string) (*models.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.state.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	return &p, nil
}

func (r memPayments) List(_ context.Context) ([]models.Payment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Payment, 0, len(r.m.state.payments))
	for _, p := range r.m.state.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memPayments) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.state.payments[id]; !ok {
		return apperrors.ErrPaymentNotFound
	}
	delete(r.m.state.payments, id)
	return nil
}

func (r memPayments) DeleteByUserOrCourses(_ context.Context, userID int64, courseIDs []int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.check("payments.DeleteByUserOrCourses"); err != nil {
		return 0, err
	}
	set := int64Set(courseIDs)
	var n int64
	for id, p := range r.m.state.payments {
		if (userID > 0 && p.UserID == userID) || set[p.CourseID] {
			delete(r.m.state.payments, id)
			n++
		}
	}
	return n, nil
}
