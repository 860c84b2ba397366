package routes

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/controllers"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
	pkgauth "github.com/yigit/coursehub/internal/pkg/auth"
	"github.com/yigit/coursehub/internal/pkg/filestorage"
	"github.com/yigit/coursehub/internal/testutils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type apiFixture struct {
	router     *gin.Engine
	store      *testutils.MemoryStore
	jwt        *pkgauth.JWTService
	hasher     pkgauth.PasswordHasher
	uploadsDir string
}

func newAPIFixture(t *testing.T, db controllers.Pinger) *apiFixture {
	t.Helper()
	require.NoError(t, middleware.RegisterValidators())

	store := testutils.NewMemoryStore()
	hasher := pkgauth.NewArgon2Hasher(pkgauth.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1})
	jwtSvc := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "coursehub.test"})
	uploadsDir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(uploadsDir, 1<<20)
	require.NoError(t, err)

	log := zerolog.Nop()
	gate := auth.NewGate(jwtSvc, nil, store.Users(), log)

	router := gin.New()
	SetupRouter(router, Controllers{
		User:       controllers.NewUserController(services.NewAccountService(store, hasher, jwtSvc, nil, log), storage, log),
		Course:     controllers.NewCourseController(services.NewCourseService(store, log), storage, log),
		Payment:    controllers.NewPaymentController(services.NewPaymentService(store, log)),
		Enrollment: controllers.NewEnrollmentController(services.NewEnrollmentService(store, log)),
		Health:     controllers.NewHealthController(db, log),
	}, middleware.NewAuthMiddleware(gate))

	return &apiFixture{router: router, store: store, jwt: jwtSvc, hasher: hasher, uploadsDir: uploadsDir}
}

// user stores an account directly and returns it with a valid token
func (f *apiFixture) user(t *testing.T, username string, role models.Role) (*models.User, string) {
	t.Helper()
	hash, err := f.hasher.Hash("secret123")
	require.NoError(t, err)
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "Test " + username,
		Password: hash,
		Role:     role,
		Sex:      models.SexMale,
		IsActive: true,
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	token, _, err := f.jwt.Issue(u.ID)
	require.NoError(t, err)
	return u, token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return f.serve(t, req)
}

func (f *apiFixture) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (f *apiFixture) uploads(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.uploadsDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func pngURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

func registration(username, email string) map[string]interface{} {
	return map[string]interface{}{
		"username":        username,
		"email":           email,
		"fullName":        "Jane Doe",
		"phoneNumber":     "+15551234567",
		"password":        "secret123",
		"confirmPassword": "secret123",
		"sex":             "FEMALE",
		"profilePhoto":    pngURI(),
		"coverPhoto":      pngURI(),
	}
}

func idOf(t *testing.T, env map[string]interface{}, key string) int64 {
	t.Helper()
	obj, ok := env[key].(map[string]interface{})
	require.True(t, ok, "missing %q in %v", key, env)
	return int64(obj["id"].(float64))
}

func TestRegisterLoginAndProfile(t *testing.T) {
	f := newAPIFixture(t, fakePinger{})

	rec, env := f.do(t, http.MethodPost, "/users/create", "", registration("jane", "Jane@Example.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, env["isSuccess"])
	assert.Equal(t, "Successfully created user", env["message"])
	assert.NotContains(t, rec.Body.String(), "password")
	user := env["user"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", user["email"])
	assert.Len(t, f.uploads(t), 2)

	rec, env = f.do(t, http.MethodPost, "/users/create", "", registration("jane2", "JANE@example.com"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, env["isSuccess"])
	assert.Len(t, f.uploads(t), 2, "images of a rejected registration are removed")

	rec, env = f.do(t, http.MethodPost, "/users/login", "", map[string]string{"email": "jane@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect Password", env["message"])
	assert.NotContains(t, env, "token")

	rec, env = f.do(t, http.MethodPost, "/users/login", "", map[string]string{"email": "JANE@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := env["token"].(map[string]interface{})["accessToken"].(string)
	require.NotEmpty(t, token)

	rec, env = f.do(t, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jane", env["user"].(map[string]interface{})["username"])

	rec, _ = f.do(t, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = f.do(t, http.MethodGet, "/users/list", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env["users"], 1)
}

func TestRegisterMultipart(t *testing.T) {
	f := newAPIFixture(t, fakePinger{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"username":        "mark",
		"email":           "mark@example.com",
		"fullName":        "Mark Doe",
		"phoneNumber":     "+15557654321",
		"password":        "secret123",
		"confirmPassword": "secret123",
		"sex":             "MALE",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, field := range []string{"profilePhoto", "coverPhoto"} {
		part, err := w.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/create", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec, env := f.serve(t, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := env["user"].(map[string]interface{})
	assert.NotEmpty(t, user["profilePhoto"])
	assert.Len(t, f.uploads(t), 2)
}

func TestCreateCourseMultipart(t *testing.T) {
	f := newAPIFixture(t, fakePinger{})
	_, token := f.user(t, "mentor", models.RoleInstructor)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Go in practice"))
	require.NoError(t, w.WriteField("price", "19.99"))
	require.NoError(t, w.WriteField("cover_img", pngURI()))
	part, err := w.CreateFormFile("course_img", "course.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses/create", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec, env := f.serve(t, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	course := env["course"].(map[string]interface{})
	assert.Equal(t, "Go in practice", course["title"])
	assert.NotEmpty(t, course["courseImg"])
	assert.NotEmpty(t, course["coverImg"])
	assert.Len(t, f.uploads(t), 2)
}

func TestRegisterValidationFailures(t *testing.T) {
	f := newAPIFixture(t, fakePinger{})

	mismatch := registration("jane", "jane@example.com")
	mismatch["confirmPassword"] = "other123"
	rec, env := f.do(t, http.MethodPost, "/users/create", "", mismatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password and confirm password do not match", env["message"])
	assert.Empty(t, f.uploads(t))

	badSex := registration("jane", "jane@example.com")
	badSex["sex"] = "other"
	rec, _ = f.do(t, http.MethodPost, "/users/create", "", badSex)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svg := registration("jane", "jane@example.com")
	svg["profilePhoto"] = "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte("<svg/>"))
	rec, _ = f.do(t, http.MethodPost, "/users/create", "", svg)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 0, f.store.Counts()["users"])
}

func TestRoleProtectedRoutes(t *testing.T) {
	f := newAPIFixture(t, fakePinger{})
	_, userToken := f.user(t, "student", models.RoleUser)
	_, adminToken := f.user(t, "root", models.RoleAdmin)

	rec, _ := f.do(t, http.MethodPost, "/courses/create", "", map[string]interface{}{"title": "Go"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := f.do(t, http.MethodPost, "/courses/create", userToken, map[string]interface{}{"title": "Go"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, env["isSuccess"])

	rec, _ = f.do(t, http.MethodGet, "/payments/list", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodPut, "/users/role/update", userToken, map[string]string{"email": "student@example.com", "role": "ADMIN"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = f.do(t, http.MethodPut, "/users/role/update", adminToken, map[string]string{"email": "ghost@example.com", "role": "INSTRUCTOR"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no user found!", env["message"])

	rec, _ = f.do(t, http.MethodPut, "/users/role/update", adminToken, map[string]string{"email": "student@example.com", "role": "OWNER"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = f.do(t, http.MethodPut, "/users/role/update", adminToken, map[string]string{"email": "Student@example.com", "role": "INSTRUCTOR"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "INSTRUCTOR", env["user"].(map[string]interface{})["role"])

	// the promoted user's existing token now carries the new role
	rec, _ = f.do(t, http.MethodPost, "/courses/create", userToken, map[string]interface{}{"title": "Go"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCourseLifecycle(t *testing.T) {
	f := newAPIFixture(t, fakePinger{})
	_, ownerToken := f.user(t, "mentor", models.RoleInstructor)
	_, otherToken := f.user(t, "rival", models.RoleInstructor)

	rec, env := f.do(t, http.MethodPost, "/courses/create", ownerToken, map[string]interface{}{
		"title": "Go in practice", "price": 49.5, "courseImg": pngURI(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	courseID := idOf(t, env, "course")
	path := "/courses/" + strconv.FormatInt(courseID, 10)

	rec, env = f.do(t, http.MethodPost, path+"/chapters", ownerToken, map[string]interface{}{"title": "Basics"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	chapterID := idOf(t, env, "chapter")

	rec, _ = f.do(t, http.MethodPost, path+"/chapters", otherToken, map[string]interface{}{"title": "Hijack"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodPost, path+"/chapters/"+strconv.FormatInt(chapterID, 10)+"/lessons", ownerToken,
		map[string]interface{}{"title": "Hello", "videoUrl": "https://videos.example.com/1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = f.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	chapters := env["course"].(map[string]interface{})["chapters"].([]interface{})
	require.Len(t, chapters, 1)
	assert.Len(t, chapters[0].(map[string]interface{})["lessons"], 1)

	rec, env = f.do(t, http.MethodGet, "/courses?page=1&size=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env["courses"], 1)
	assert.Equal(t, float64(1), env["pagination"].(map[string]interface{})["totalItems"])

	rec, _ = f.do(t, http.MethodPut, "/courses/update", otherToken, map[string]interface{}{"courseId": courseID, "title": "Mine now"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = f.do(t, http.MethodPut, "/courses/update", ownerToken, map[string]interface{}{"courseId": courseID, "title": "Go in production", "price": 59})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Go in production", env["course"].(map[string]interface{})["title"])

	rec, _ = f.do(t, http.MethodDelete, "/courses/delete/"+strconv.FormatInt(courseID, 10), ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = f.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no course found!", env["message"])
	assert.Equal(t, 0, f.store.Counts()["chapters"])
	assert.Equal(t, 0, f.store.Counts()["lessons"])
}

func TestPaymentsAndEnrollments(t *testing.T) {
	f := newAPIFixture(t, fakePinger{})
	_, ownerToken := f.user(t, "mentor", models.RoleInstructor)
	buyer, buyerToken := f.user(t, "buyer", models.RoleUser)
	_, adminToken := f.user(t, "root", models.RoleAdmin)

	rec, env := f.do(t, http.MethodPost, "/courses/create", ownerToken, map[string]interface{}{"title": "Go", "price": 20})
	require.Equal(t, http.StatusCreated, rec.Code)
	courseID := idOf(t, env, "course")

	rec, env = f.do(t, http.MethodPost, "/payments/create", buyerToken, map[string]interface{}{"userId": buyer.ID, "courseId": 9999})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no course found!", env["message"])
	assert.Equal(t, 0, f.store.Counts()["payments"])

	rec, env = f.do(t, http.MethodPost, "/payments/create", buyerToken, map[string]interface{}{"userId": buyer.ID, "courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	payment := env["payment"].(map[string]interface{})
	assert.Equal(t, float64(20), payment["price"])
	paymentID := payment["id"].(string)

	rec, _ = f.do(t, http.MethodGet, "/payments/"+paymentID, buyerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = f.do(t, http.MethodGet, "/payments/"+paymentID, ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = f.do(t, http.MethodGet, "/payments/list", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env["payments"], 1)

	rec, env = f.do(t, http.MethodPost, "/enrollments/create", buyerToken, map[string]interface{}{"userId": buyer.ID, "courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	enrollmentID := idOf(t, env, "enrollment")

	rec, _ = f.do(t, http.MethodPut, "/enrollments/update", buyerToken, map[string]interface{}{"enrollmentId": enrollmentID, "progress": 101})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = f.do(t, http.MethodPut, "/enrollments/update", buyerToken, map[string]interface{}{"enrollmentId": enrollmentID, "progress": 40, "status": "ACTIVE"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(40), env["enrollment"].(map[string]interface{})["progress"])

	rec, env = f.do(t, http.MethodGet, "/enrollments/me", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env["enrollments"], 1)

	rec, _ = f.do(t, http.MethodDelete, "/payments/delete/"+paymentID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = f.do(t, http.MethodDelete, "/enrollments/delete/"+strconv.FormatInt(enrollmentID, 10), buyerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteUserCascade(t *testing.T) {
	f := newAPIFixture(t, fakePinger{})
	owner, ownerToken := f.user(t, "mentor", models.RoleInstructor)
	buyer, buyerToken := f.user(t, "buyer", models.RoleUser)
	_, adminToken := f.user(t, "root", models.RoleAdmin)

	_, env := f.do(t, http.MethodPost, "/courses/create", ownerToken, map[string]interface{}{"title": "Go", "price": 10})
	courseID := idOf(t, env, "course")
	rec, _ := f.do(t, http.MethodPost, "/payments/create", buyerToken, map[string]interface{}{"userId": buyer.ID, "courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = f.do(t, http.MethodPost, "/enrollments/create", buyerToken, map[string]interface{}{"userId": buyer.ID, "courseId": courseID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = f.do(t, http.MethodDelete, "/users/delete/"+strconv.FormatInt(owner.ID, 10), buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodDelete, "/users/delete/abc", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = f.do(t, http.MethodDelete, "/users/delete/"+strconv.FormatInt(owner.ID, 10), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Successfully deleted!", env["message"])

	assert.False(t, f.store.References(owner.ID))
	counts := f.store.Counts()
	assert.Equal(t, 0, counts["courses"])
	assert.Equal(t, 0, counts["payments"])
	assert.Equal(t, 0, counts["enrollments"])

	rec, _ = f.do(t, http.MethodGet, "/users/list/"+strconv.FormatInt(owner.ID, 10), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the deleted account's token no longer authenticates
	rec, _ = f.do(t, http.MethodGet, "/users/me", ownerToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	rec, env := newAPIFixture(t, fakePinger{}).do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, env["isSuccess"])

	rec, env = newAPIFixture(t, fakePinger{err: errors.New("down")}).do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, env["isSuccess"])
}
