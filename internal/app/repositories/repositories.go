package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/db"
)

// UserRepository persists user accounts
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByEmail matches case-insensitively
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	Delete(ctx context.Context, id int64) error
}

// CourseRepository persists courses with their chapters and lessons
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, offset uint64, limit int) ([]models.Course, int64, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Course, error)
	ListByOwners(ctx context.Context, ownerIDs []int64) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	CreateChapter(ctx context.Context, chapter *models.Chapter) error
	GetChapterByID(ctx context.Context, id int64) (*models.Chapter, error)
	ListChapters(ctx context.Context, courseIDs []int64) ([]models.Chapter, error)
	DeleteChaptersByCourseIDs(ctx context.Context, courseIDs []int64) (int64, error)

	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	ListLessons(ctx context.Context, courseIDs []int64) ([]models.Lesson, error)
	DeleteLessonsByCourseIDs(ctx context.Context, courseIDs []int64) (int64, error)
}

// EnrollmentRepository persists enrollments
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ListByUserIDs(ctx context.Context, userIDs []int64) ([]models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
	// DeleteByUserOrCourses removes enrollments owned by userID or pointing at any of courseIDs.
	// A zero userID matches no user.
	DeleteByUserOrCourses(ctx context.Context, userID int64, courseIDs []int64) (int64, error)
}

// PaymentRepository persists payment records
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUserOrCourses follows the same matching rules as the enrollment variant
	DeleteByUserOrCourses(ctx context.Context, userID int64, courseIDs []int64) (int64, error)
}

// Store gives services access to every repository and to transactions.
// Repositories obtained from the tx Store passed to fn run inside that transaction.
type Store interface {
	Users() UserRepository
	Courses() CourseRepository
	Enrollments() EnrollmentRepository
	Payments() PaymentRepository
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

// Repositories is the PostgreSQL backed Store
type Repositories struct {
	pg *db.PostgresDB // nil inside a transaction
	q  db.DBTX

	users       *userRepository
	courses     *courseRepository
	enrollments *enrollmentRepository
	payments    *paymentRepository
}

// NewRepositories initializes all repositories on top of the pool
func NewRepositories(pg *db.PostgresDB) *Repositories {
	r := newRepositories(pg.Pool)
	r.pg = pg
	return r
}

func newRepositories(q db.DBTX) *Repositories {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return &Repositories{
		q:           q,
		users:       &userRepository{db: q, sb: sb},
		courses:     &courseRepository{db: q, sb: sb},
		enrollments: &enrollmentRepository{db: q, sb: sb},
		payments:    &paymentRepository{db: q, sb: sb},
	}
}

func (r *Repositories) Users() UserRepository             { return r.users }
func (r *Repositories) Courses() CourseRepository         { return r.courses }
func (r *Repositories) Enrollments() EnrollmentRepository { return r.enrollments }
func (r *Repositories) Payments() PaymentRepository       { return r.payments }

// WithTx runs fn inside a database transaction. Nested calls reuse the outer transaction.
func (r *Repositories) WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if r.pg == nil {
		return fn(ctx, r)
	}
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newRepositories(tx))
	})
}
