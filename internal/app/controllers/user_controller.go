package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
	"github.com/yigit/coursehub/internal/pkg/filestorage"
)

// UserController handles account related operations
type UserController struct {
	accountService services.AccountService
	fileStorage    filestorage.ImageStorage
	logger         zerolog.Logger
}

// NewUserController creates a new user controller
func NewUserController(accountService services.AccountService, fileStorage filestorage.ImageStorage, logger zerolog.Logger) *UserController {
	return &UserController{
		accountService: accountService,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a USER account. Accepts multipart/form-data with profilePhoto and coverPhoto files, or JSON with base64 data URIs in the same fields.
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Param request body dto.RegisterRequest true "Registration form"
// @Success 201 {object} dto.SuccessResponse{user=dto.UserResponse} "Successfully created user"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid fields"
// @Failure 409 {object} dto.ErrorResponse "Email or username already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/create [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	intake := newImageIntake(c.fileStorage, c.logger)
	var err error
	if req.ProfileImage, err = intake.resolve(ctx, "profilePhoto", req.ProfileImage, "profile"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if req.CoverImage, err = intake.resolve(ctx, "coverPhoto", req.CoverImage, "cover"); err != nil {
		intake.discard()
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.accountService.Register(ctx.Request.Context(), &req)
	if err != nil {
		intake.discard()
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewEnvelope("Successfully created user", "user", user))
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user by email and password and returns an access token
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.SuccessResponse{user=dto.UserResponse,token=dto.TokenResponse} "successfully logged in"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Incorrect Email or Incorrect Password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	resp, err := c.accountService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewEnvelope("successfully logged in", "user", resp.User).With("token", resp.Token))
}

// Logout revokes the current access token
// @Summary Log out
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/logout [post]
func (c *UserController) Logout(ctx *gin.Context) {
	if err := c.accountService.Logout(ctx.Request.Context(), middleware.CurrentPrincipal(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("successfully logged out", "", nil))
}

// ListUsers returns all users
// @Summary List users
// @Description Lists users with their owned courses and enrollments
// @Tags users
// @Produce json
// @Success 200 {object} dto.SuccessResponse{users=[]dto.UserResponse} "successfully fetched!"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/list [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.accountService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("successfully fetched!", "users", users))
}

// GetUser retrieves one user by id
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param userId path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.SuccessResponse{user=dto.UserResponse} "success"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "no user found!"
// @Router /users/list/{userId} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "userId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.accountService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("success", "user", user))
}

// GetMe returns the authenticated user with enrollments, courses, chapters and lessons
// @Summary Current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse{user=dto.UserResponse} "success"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	user, err := c.accountService.GetProfile(ctx.Request.Context(), middleware.CurrentPrincipal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("success", "user", user))
}

// UpdateUser edits a profile
// @Summary Update user
// @Description The user may edit their own profile; admins may edit any profile. The password is always re-hashed.
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRequest true "Profile fields"
// @Success 200 {object} dto.SuccessResponse{user=dto.UserResponse} "user updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid fields"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no user found!"
// @Failure 409 {object} dto.ErrorResponse "Email or username already in use"
// @Router /users/update [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req dto.UpdateUserRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	intake := newImageIntake(c.fileStorage, c.logger)
	var err error
	if req.ProfileImage, err = intake.resolve(ctx, "profilePhoto", req.ProfileImage, "profile"); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if req.CoverImage, err = intake.resolve(ctx, "coverPhoto", req.CoverImage, "cover"); err != nil {
		intake.discard()
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.accountService.UpdateUser(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		intake.discard()
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("user updated successfully", "user", user))
}

// UpdateRole changes the role of a user identified by email
// @Summary Update user role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateRoleRequest true "Email and new role"
// @Success 200 {object} dto.SuccessResponse{user=dto.UserResponse} "user role updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing fields or unknown role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no user found!"
// @Router /users/role/update [put]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	user, err := c.accountService.UpdateRole(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("user role updated successfully", "user", user))
}

// DeleteUser removes a user together with everything that references it
// @Summary Delete user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID" Format(int64) minimum(1)
// @Success 200 {object} dto.SuccessResponse{user=dto.UserResponse} "Successfully deleted!"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "no user found!"
// @Router /users/delete/{userId} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "userId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.accountService.DeleteUser(ctx.Request.Context(), middleware.CurrentPrincipal(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewEnvelope("Successfully deleted!", "user", user))
}
