package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/controllers"
	"github.com/yigit/coursehub/internal/middleware"
)

// Controllers groups the handlers mounted under /api/v1
type Controllers struct {
	User       *controllers.UserController
	Course     *controllers.CourseController
	Payment    *controllers.PaymentController
	Enrollment *controllers.EnrollmentController
	Health     *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", ctrl.Health.Health)

	authenticated := authMiddleware.Authenticate()
	managers := authMiddleware.RequireRoles(auth.CourseManagers)
	admins := authMiddleware.RequireRoles(auth.AdminOnly)

	users := v1.Group("/users")
	{
		users.POST("/create", ctrl.User.Register)
		users.POST("/login", ctrl.User.Login)
		users.GET("/list", ctrl.User.ListUsers)
		users.GET("/list/:userId", ctrl.User.GetUser)

		users.POST("/logout", authenticated, ctrl.User.Logout)
		users.GET("/me", authenticated, ctrl.User.GetMe)
		// self or admin is checked by the service
		users.PUT("/update", authenticated, ctrl.User.UpdateUser)
		users.PUT("/role/update", authenticated, admins, ctrl.User.UpdateRole)
		users.DELETE("/delete/:userId", authenticated, admins, ctrl.User.DeleteUser)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", ctrl.Course.ListCourses)
		courses.GET("/:courseId", ctrl.Course.GetCourse)

		// ownership is checked by the service
		courses.POST("/create", authenticated, managers, ctrl.Course.CreateCourse)
		courses.PUT("/update", authenticated, managers, ctrl.Course.UpdateCourse)
		courses.DELETE("/delete/:courseId", authenticated, managers, ctrl.Course.DeleteCourse)
		courses.POST("/:courseId/chapters", authenticated, managers, ctrl.Course.AddChapter)
		courses.POST("/:courseId/chapters/:chapterId/lessons", authenticated, managers, ctrl.Course.AddLesson)
	}

	payments := v1.Group("/payments", authenticated)
	{
		payments.POST("/create", ctrl.Payment.CreatePayment)
		payments.GET("/list", admins, ctrl.Payment.ListPayments)
		payments.GET("/:paymentId", ctrl.Payment.GetPayment)
		payments.DELETE("/delete/:paymentId", admins, ctrl.Payment.DeletePayment)
	}

	enrollments := v1.Group("/enrollments", authenticated)
	{
		enrollments.POST("/create", ctrl.Enrollment.CreateEnrollment)
		enrollments.GET("/me", ctrl.Enrollment.ListMyEnrollments)
		enrollments.PUT("/update", ctrl.Enrollment.UpdateEnrollment)
		enrollments.DELETE("/delete/:enrollmentId", ctrl.Enrollment.DeleteEnrollment)
	}
}
