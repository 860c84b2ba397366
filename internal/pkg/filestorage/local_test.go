package filestorage

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// multipartHeader builds a real *multipart.FileHeader by parsing a multipart body
func multipartHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}

func TestLocalStorage_SaveFile(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, 16)
	require.NoError(t, err)

	name, err := ls.SaveFile(multipartHeader(t, "profilePhoto", "me.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))

	_, err = ls.SaveFile(multipartHeader(t, "profilePhoto", "big.png", bytes.Repeat([]byte("x"), 17)))
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = ls.SaveFile(multipartHeader(t, "profilePhoto", "script.sh", []byte("echo")))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	name, err = ls.SaveFile(nil)
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestLocalStorage_SaveBase64Image(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, 64)
	require.NoError(t, err)

	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	name, err := ls.SaveBase64Image(uri, "profile")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "profile-"))
	assert.True(t, strings.HasSuffix(name, ".jpeg"))

	stored, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(stored))

	tests := []struct {
		name string
		uri  string
		want error
	}{
		{"plain filename", "avatar.png", ErrInvalidImageSource},
		{"bad base64", "data:image/png;base64,@@@", ErrInvalidImageSource},
		{"svg", "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte("<svg/>")), ErrUnsupportedType},
		{"too large", "data:image/png;base64," + base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 100)), ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ls.SaveBase64Image(tt.uri, "cover")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLocalStorage_DeleteFile(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, 0)
	require.NoError(t, err)

	name, err := ls.SaveBase64Image("data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("x")), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "image-"))

	require.NoError(t, ls.DeleteFile(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, ls.DeleteFile(name))
	assert.NoError(t, ls.DeleteFile(""))
}
