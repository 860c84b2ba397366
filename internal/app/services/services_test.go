package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	pkgauth "github.com/yigit/coursehub/internal/pkg/auth"
	"github.com/yigit/coursehub/internal/testutils"
)

// cheap parameters keep the argon2 tests fast
var testHashParams = pkgauth.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1}

type fixture struct {
	store       *testutils.MemoryStore
	hasher      pkgauth.PasswordHasher
	jwt         *pkgauth.JWTService
	accounts    AccountService
	courses     CourseService
	payments    PaymentService
	enrollments EnrollmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutils.NewMemoryStore()
	hasher := pkgauth.NewArgon2Hasher(testHashParams)
	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursehub.test",
	})
	log := zerolog.Nop()
	return &fixture{
		store:       store,
		hasher:      hasher,
		jwt:         jwtSvc,
		accounts:    NewAccountService(store, hasher, jwtSvc, nil, log),
		courses:     NewCourseService(store, log),
		payments:    NewPaymentService(store, log),
		enrollments: NewEnrollmentService(store, log),
	}
}

func validRegistration(username, email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:        username,
		Email:           email,
		FullName:        "Test User",
		PhoneNumber:     "+15551234567",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Sex:             "male",
		ProfileImage:    "profile.png",
		CoverImage:      "cover.png",
	}
}

// seedUser stores a user with the given role directly, bypassing registration
func (f *fixture) seedUser(t *testing.T, username string, role models.Role) (*models.User, *auth.Principal) {
	t.Helper()
	hash, err := f.hasher.Hash("secret123")
	require.NoError(t, err)
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Seeded " + username,
		Password: hash,
		Role:     role,
		Sex:      models.SexFemale,
		IsActive: true,
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u, &auth.Principal{UserID: u.ID, Role: role}
}

// seedCourseTree creates a course with one chapter holding one lesson
func (f *fixture) seedCourseTree(t *testing.T, owner *auth.Principal, title string, price float64) *dto.CourseResponse {
	t.Helper()
	ctx := context.Background()
	course, err := f.courses.CreateCourse(ctx, owner, &dto.CreateCourseRequest{Title: title, Price: price})
	require.NoError(t, err)
	chapter, err := f.courses.AddChapter(ctx, owner, course.ID, &dto.CreateChapterRequest{Title: "Intro"})
	require.NoError(t, err)
	_, err = f.courses.AddLesson(ctx, owner, course.ID, chapter.ID, &dto.CreateLessonRequest{Title: "Welcome"})
	require.NoError(t, err)
	return course
}
