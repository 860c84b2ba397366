package controllers

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/filestorage"
)

func testContext(params ...gin.Param) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Params = params
	return c
}

func TestParseIDParam(t *testing.T) {
	id, err := parseIDParam(testContext(gin.Param{Key: "userId", Value: "42"}), "userId")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc"} {
		_, err := parseIDParam(testContext(gin.Param{Key: "userId", Value: raw}), "userId")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, raw)
	}
}

func TestImageIntake(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir, 1<<10)
	require.NoError(t, err)

	intake := newImageIntake(storage, zerolog.Nop())
	ctx := testContext()

	name, err := intake.resolve(ctx, "profilePhoto", "profile.png", "profile")
	require.NoError(t, err)
	assert.Empty(t, name, "plain filenames are not accepted as uploads")

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))
	name, err = intake.resolve(ctx, "profilePhoto", uri, "profile")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, name))

	_, err = intake.resolve(ctx, "coverPhoto", "data:image/png;base64,@@@", "cover")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	intake.discard()
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestImageIntakeReadsMultipartParts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir, 1<<10)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("profilePhoto", "me.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("coverPhoto", "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("png"))))
	require.NoError(t, w.Close())

	ctx := testContext()
	ctx.Request = httptest.NewRequest(http.MethodPost, "/", &buf)
	ctx.Request.Header.Set("Content-Type", w.FormDataContentType())

	intake := newImageIntake(storage, zerolog.Nop())
	profile, err := intake.resolve(ctx, "profilePhoto", "", "profile")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(profile))

	cover, err := intake.resolve(ctx, "coverPhoto", "", "cover")
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(cover))
	assert.FileExists(t, filepath.Join(dir, cover))
}
