package routes

import (
	"lms/backend/config"
	"lms/backend/controllers"
	"lms/backend/middleware"
	"lms/backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Public catalog
	coursesController := controllers.NewCoursesController(db, cfg)
	app.Get("/api/courses/public", coursesController.GetPublicCourses)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(db, cfg)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staffOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleTrainer)
	learnerOnly := middleware.RequireRoles(models.RoleLearner)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	users := app.Group("/api/users", authMiddleware, adminOnly)
	users.Get("/", userController.ListUsers)
	users.Patch("/:id/status", userController.ToggleStatus)
	users.Post("/:id/reset-password", userController.ResetPassword)

	// Courses routes
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/", staffOnly, coursesController.CreateCourse)
	courses.Put("/:id", staffOnly, coursesController.UpdateCourse)
	courses.Delete("/:id", staffOnly, coursesController.DeleteCourse)
	courses.Post("/:id/levels", staffOnly, coursesController.AddLevel)

	// Enrollment routes
	enrollmentController := controllers.NewEnrollmentController(db, cfg)
	enrollment := app.Group("/api/enrollment", authMiddleware)
	enrollment.Post("/enroll", enrollmentController.Enroll)
	enrollment.Get("/my-courses", learnerOnly, enrollmentController.GetMyCourses)
	enrollment.Patch("/update-progress", learnerOnly, enrollmentController.UpdateProgress)
	enrollment.Post("/complete-quiz", learnerOnly, enrollmentController.CompleteQuiz)

	// Quiz routes
	quizController := controllers.NewQuizController(db, cfg)
	quiz := app.Group("/api/quiz", authMiddleware)
	quiz.Post("/questions", staffOnly, quizController.AddQuestion)
	quiz.Get("/play/:courseId/:level", learnerOnly, quizController.Play)
	quiz.Post("/submit", learnerOnly, quizController.Submit)
	quiz.Get("/result/:attemptId", learnerOnly, quizController.GetResult)
	quiz.Get("/review/:attemptId", learnerOnly, quizController.GetReview)

	// Certificate routes
	certificatesController := controllers.NewCertificatesController(db, cfg)
	certificates := app.Group("/api/certificates", authMiddleware)
	certificates.Post("/issue/:courseId", staffOnly, certificatesController.Issue)
	certificates.Get("/my", learnerOnly, certificatesController.GetMyCertificates)
	certificates.Get("/", staffOnly, certificatesController.ListAll)

	// Notification routes
	notificationsController := controllers.NewNotificationsController(db, cfg)
	notifications := app.Group("/api/notifications", authMiddleware)
	notifications.Get("/my", notificationsController.GetMyNotifications)
	notifications.Patch("/:id/read", notificationsController.MarkRead)

	// Organization settings
	organizationController := controllers.NewOrganizationController(db, cfg)
	app.Get("/api/organization", authMiddleware, organizationController.GetSettings)
	app.Put("/api/organization", authMiddleware, adminOnly, organizationController.UpdateSettings)
}
