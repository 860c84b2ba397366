// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/filestorage"
)

// parseIDParam reads a positive int64 path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be a positive number", name))
	}
	return id, nil
}

// imageIntake turns an uploaded file or an inline data URI into a stored filename
// and remembers what it stored so a failed request can clean up after itself.
type imageIntake struct {
	storage filestorage.ImageStorage
	logger  zerolog.Logger
	saved   []string
}

func newImageIntake(storage filestorage.ImageStorage, logger zerolog.Logger) *imageIntake {
	return &imageIntake{storage: storage, logger: logger}
}

// resolve prefers the multipart file named field and falls back to inline, or to the
// form value of field, when it is a data URI. Anything else yields "" so the caller
// treats the image as not supplied.
func (in *imageIntake) resolve(ctx *gin.Context, field, inline, prefix string) (string, error) {
	if fh, err := ctx.FormFile(field); err == nil {
		name, err := in.storage.SaveFile(fh)
		if err != nil {
			return "", err
		}
		in.saved = append(in.saved, name)
		return name, nil
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		in.logger.Debug().Err(err).Str("field", field).Msg("No multipart file for field")
	}

	if inline == "" {
		inline = ctx.PostForm(field)
	}
	if strings.HasPrefix(strings.TrimSpace(inline), "data:image") {
		name, err := in.storage.SaveBase64Image(inline, prefix)
		if err != nil {
			return "", err
		}
		in.saved = append(in.saved, name)
		return name, nil
	}
	return "", nil
}

// discard removes every file stored by this intake
func (in *imageIntake) discard() {
	for _, name := range in.saved {
		if err := in.storage.DeleteFile(name); err != nil {
			in.logger.Warn().Err(err).Str("file", name).Msg("Failed to remove orphaned upload")
		}
	}
	in.saved = nil
}
