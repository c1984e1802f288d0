package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/douradinams/Douradinams/internal/middleware"
	"github.com/douradinams/Douradinams/internal/models"
)

// Handlers groups every HTTP handler the API mounts.
type Handlers struct {
	Auth       *AuthHandler
	Navigation *NavigationHandler
	Settings   *SettingsHandler
	Students   *StudentHandler
	Passes     *PassHandler
	Schools    *SchoolHandler
	Staff      *StaffHandler
	Metrics    *MetricsHandler
}

// RegisterRoutes mounts the API under prefix. requireAuth rejects anonymous
// callers; optionalAuth only attaches the user when a token is present.
func RegisterRoutes(r *gin.Engine, prefix string, requireAuth, optionalAuth gin.HandlerFunc, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	staff := string(models.RoleStaff)
	support := string(models.RoleSupport)

	api := r.Group(prefix)
	{
		auth := api.Group("/auth")
		auth.POST("/login/student", h.Auth.LoginStudent)
		auth.POST("/login/staff", h.Auth.LoginStaff)
		auth.POST("/login/support", h.Auth.LoginSupport)
		auth.GET("/me", requireAuth, h.Auth.Me)

		api.POST("/navigation", optionalAuth, h.Navigation.Next)

		api.GET("/settings/welcome", h.Settings.Welcome)
		settings := api.Group("/settings", requireAuth, middleware.RequireRoles(models.RoleSupport))
		settings.GET("", h.Settings.Get)
		settings.PUT("", h.Settings.Update)

		api.GET("/passes/:token", h.Passes.Resolve)

		students := api.Group("/students", requireAuth)
		staffOnly := middleware.RBAC(staff)
		viewer := middleware.RBAC(staff, support, middleware.Self)
		students.GET("", staffOnly, h.Students.List)
		students.POST("", staffOnly, h.Students.Create)
		students.GET("/export", staffOnly, h.Students.Export)
		students.POST("/import", staffOnly, h.Students.Import)
		students.GET("/:id", viewer, h.Students.Get)
		students.PUT("/:id", staffOnly, h.Students.Update)
		students.POST("/:id/photo", staffOnly, h.Students.UploadPhoto)
		students.GET("/:id/photo/:file", viewer, h.Students.Photo)
		students.GET("/:id/pass.pdf", viewer, h.Passes.PDF)
		students.POST("/:id/share", viewer, h.Passes.Share)
		students.POST("/:id/share/result", viewer, h.Passes.ShareResult)

		schools := api.Group("/schools", requireAuth)
		schools.GET("", middleware.RBAC(staff, support), h.Schools.List)
		schools.POST("", middleware.RBAC(support), h.Schools.Create)
		schools.DELETE("/:id", middleware.RBAC(support), h.Schools.Delete)

		roster := api.Group("/staff", requireAuth, middleware.RBAC(support))
		roster.GET("", h.Staff.List)
		roster.POST("", h.Staff.Create)
		roster.DELETE("/:id", h.Staff.Delete)
	}
}
