package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// CreateEnrollment enrolls a user into a course
// @Summary Create enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequest true "Enrollment data"
// @Success 201 {object} dto.SuccessResponse{enrollment=dto.EnrollmentResponse} "successfully enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no user found! or no course found!"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /enrollments/create [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	enrollment, err := c.enrollmentService.CreateEnrollment(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewEnvelope("successfully enrolled", "enrollment", enrollment))
}

// ListMyEnrollments returns the caller's enrollments with their courses
// @Summary My enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse{enrollments=[]dto.EnrollmentResponse} "successfully fetched!"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /enrollments/me [get]
func (c *EnrollmentController) ListMyEnrollments(ctx *gin.Context) {
	enrollments, err := c.enrollmentService.ListMyEnrollments(ctx.Request.Context(), middleware.CurrentPrincipal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("successfully fetched!", "enrollments", enrollments))
}

// UpdateEnrollment changes progress, status or the enrolled flag
// @Summary Update enrollment
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateEnrollmentRequest true "Fields to change"
// @Success 200 {object} dto.SuccessResponse{enrollment=dto.EnrollmentResponse} "enrollment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/update [put]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	var req dto.UpdateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	enrollment, err := c.enrollmentService.UpdateEnrollment(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("enrollment updated successfully", "enrollment", enrollment))
}

// DeleteEnrollment removes an enrollment
// @Summary Delete enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param enrollmentId path int true "Enrollment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.SuccessResponse "Successfully deleted!"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/delete/{enrollmentId} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "enrollmentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.enrollmentService.DeleteEnrollment(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("Successfully deleted!", "", nil))
}
