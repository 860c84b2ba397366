package filestorage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

// Upload errors. They match apperrors.ErrValidationFailed.
var (
	ErrFileTooLarge       = apperrors.NewCustomError(apperrors.ErrValidationFailed, "file exceeds the maximum upload size")
	ErrUnsupportedType    = apperrors.NewCustomError(apperrors.ErrValidationFailed, "only png, jpg, jpeg, gif and webp images are accepted")
	ErrInvalidImageSource = apperrors.NewCustomError(apperrors.ErrValidationFailed, "image must be a base64 data URI")
)

// allowed image extensions
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var dataURIPattern = regexp.MustCompile(`^data:image/([a-zA-Z0-9+.\-]+);base64,(.+)$`)

// ImageStorage stores user supplied images and returns the stored filename
type ImageStorage interface {
	SaveFile(fileHeader *multipart.FileHeader) (string, error)
	SaveBase64Image(dataURI, prefix string) (string, error)
	DeleteFile(filename string) error
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // root directory served under /uploads
	maxSize  int64  // maximum accepted size in bytes, 0 disables the check
}

var _ ImageStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance and ensures basePath exists.
func NewLocalStorage(basePath string, maxSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		maxSize:  maxSize,
	}, nil
}

// BasePath returns the directory files are written to
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

func (ls *LocalStorage) tooLarge(size int64) bool {
	return ls.maxSize > 0 && size > ls.maxSize
}

// write stores the content of r as filename, removing partial files on failure
func (ls *LocalStorage) write(filename string, r io.Reader) error {
	dstPath := filepath.Join(ls.basePath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, r); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to save file content: %w", err)
	}
	return nil
}

// SaveFile stores an uploaded image under a UUID filename. A nil header stores nothing.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	if ls.tooLarge(fileHeader.Size) {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !imageExtensions[ext] {
		return "", ErrUnsupportedType
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	filename := uuid.New().String() + ext
	if err := ls.write(filename, file); err != nil {
		return "", err
	}

	logger.Debug().Str("filename", fileHeader.Filename).Str("saved_as", filename).Msg("File saved successfully")
	return filename, nil
}

// SaveBase64Image decodes a data:image/<ext>;base64,... URI and stores it as <prefix>-<uuid>.<ext>
func (ls *LocalStorage) SaveBase64Image(dataURI, prefix string) (string, error) {
	m := dataURIPattern.FindStringSubmatch(strings.TrimSpace(dataURI))
	if m == nil {
		return "", ErrInvalidImageSource
	}

	ext := "." + strings.ToLower(m[1])
	if !imageExtensions[ext] {
		return "", ErrUnsupportedType
	}

	encoded := m[2]
	if ls.tooLarge(int64(base64.StdEncoding.DecodedLen(len(encoded)))) {
		return "", ErrFileTooLarge
	}
	content, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidImageSource
	}
	if ls.tooLarge(int64(len(content))) {
		return "", ErrFileTooLarge
	}

	if prefix == "" {
		prefix = "image"
	}
	filename := fmt.Sprintf("%s-%s%s", prefix, uuid.New().String(), ext)
	if err := ls.write(filename, bytes.NewReader(content)); err != nil {
		return "", err
	}

	logger.Debug().Str("saved_as", filename).Msg("Inline image saved successfully")
	return filename, nil
}

// DeleteFile removes a stored file. A missing file is not an error.
func (ls *LocalStorage) DeleteFile(filename string) error {
	if filename == "" {
		return nil
	}

	base := filepath.Base(filename)
	if base == "." || base == "/" || base == string(filepath.Separator) {
		return fmt.Errorf("invalid file path: %s", filename)
	}

	physicalPath := filepath.Join(ls.basePath, base)
	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
