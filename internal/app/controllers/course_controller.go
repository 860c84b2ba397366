package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
	"github.com/yigit/coursehub/internal/pkg/filestorage"
	"github.com/yigit/coursehub/internal/pkg/helpers"
)

// CourseController handles course, chapter and lesson endpoints
type CourseController struct {
	courseService services.CourseService
	fileStorage   filestorage.ImageStorage
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, fileStorage filestorage.ImageStorage, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

// CreateCourse creates a course owned by the caller
// @Summary Create course
// @Description Accepts multipart/form-data with course_img and cover_img files, or JSON with data URIs in courseImg and coverImg
// @Tags courses
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.SuccessResponse{course=dto.CourseResponse} "course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /courses/create [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	intake := newImageIntake(c.fileStorage, c.logger)
	var err error
	if req.CourseImg, err = intake.resolve(ctx, "course_img", req.CourseImg, "course"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if req.CoverImg, err = intake.resolve(ctx, "cover_img", req.CoverImg, "cover"); err != nil {
		intake.discard()
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		intake.discard()
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewEnvelope("course created successfully", "course", course))
}

// ListCourses returns a page of courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} dto.SuccessResponse{courses=dto.CourseListResponse} "successfully fetched!"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page := helpers.PageFromQuery(ctx)

	resp, err := c.courseService.ListCourses(ctx.Request.Context(), page.Number, page.Size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("successfully fetched!", "courses", resp.Courses).With("pagination", resp.Pagination))
}

// GetCourse returns a course with its chapters and lessons
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.SuccessResponse{course=dto.CourseResponse} "success"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "no course found!"
// @Router /courses/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "courseId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("success", "course", course))
}

// UpdateCourse edits a course
// @Summary Update course
// @Description Only the owner or an admin may update a course. Missing images keep the current ones.
// @Tags courses
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateCourseRequest true "Course data"
// @Success 200 {object} dto.SuccessResponse{course=dto.CourseResponse} "course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no course found!"
// @Router /courses/update [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	intake := newImageIntake(c.fileStorage, c.logger)
	var err error
	if req.CourseImg, err = intake.resolve(ctx, "course_img", req.CourseImg, "course"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if req.CoverImg, err = intake.resolve(ctx, "cover_img", req.CoverImg, "cover"); err != nil {
		intake.discard()
		middleware.HandleAPIError(ctx, err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		intake.discard()
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("course updated successfully", "course", course))
}

// DeleteCourse removes a course with its chapters, lessons, enrollments and payments
// @Summary Delete course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.SuccessResponse "Successfully deleted!"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no course found!"
// @Router /courses/delete/{courseId} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "courseId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("Successfully deleted!", "", nil))
}

// AddChapter appends a chapter to a course
// @Summary Add chapter
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Param request body dto.CreateChapterRequest true "Chapter data"
// @Success 201 {object} dto.SuccessResponse{chapter=dto.ChapterResponse} "chapter created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid chapter data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no course found!"
// @Router /courses/{courseId}/chapters [post]
func (c *CourseController) AddChapter(ctx *gin.Context) {
	courseID, err := parseIDParam(ctx, "courseId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	chapter, err := c.courseService.AddChapter(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewEnvelope("chapter created successfully", "chapter", chapter))
}

// AddLesson appends a lesson to a chapter of a course
// @Summary Add lesson
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID" Format(int64) minimum(1)
// @Param chapterId path int true "Chapter ID" Format(int64) minimum(1)
// @Param request body dto.CreateLessonRequest true "Lesson data"
// @Success 201 {object} dto.SuccessResponse{lesson=dto.LessonResponse} "lesson created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course or chapter not found"
// @Router /courses/{courseId}/chapters/{chapterId}/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	courseID, err := parseIDParam(ctx, "courseId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	chapterID, err := parseIDParam(ctx, "chapterId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	lesson, err := c.courseService.AddLesson(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), courseID, chapterID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewEnvelope("lesson created successfully", "lesson", lesson))
}
