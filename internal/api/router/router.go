package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/polinatih/school-proj/config"
	"github.com/polinatih/school-proj/internal/api/handler"
	"github.com/polinatih/school-proj/internal/api/middleware"
	"github.com/polinatih/school-proj/pkg/identity"
	"github.com/polinatih/school-proj/pkg/jwt"
	"github.com/polinatih/school-proj/pkg/metrics"
)

// Deps are the infrastructure pieces the routes need. Limiter, Metrics and
// DB may be nil.
type Deps struct {
	JWT      *jwt.Manager
	Resolver identity.Resolver
	Limiter  middleware.Limiter
	Metrics  *metrics.Metrics
	DB       *gorm.DB
	Logger   *zap.Logger
}

// crud is satisfied by every handler.ResourceHandler instantiation.
type crud interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

var (
	adminOnly        = []identity.Role{identity.RoleAdmin}
	adminOrTeacher   = []identity.Role{identity.RoleAdmin, identity.RoleTeacher}
	defaultBodyLimit = int64(8 << 20)
)

// Setup builds the gin engine.
func Setup(cfg *config.Config, h *handler.Handler, d Deps) *gin.Engine {
	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}

	// ── health ──
	r.GET("/health", health(d.DB))
	if d.Metrics != nil && cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(d.Metrics.Handler()))
	}

	bodyLimit := cfg.Server.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = defaultBodyLimit
	}

	api := r.Group("/api")
	api.Use(
		middleware.BodyLimit(bodyLimit),
		middleware.Session(d.JWT, cfg.Auth.SessionCookie),
		middleware.ResolveRole(d.Resolver, d.Metrics, d.Logger),
	)

	// public
	api.GET("/session", h.Session.GetSession)

	authorized := api.Group("")
	authorized.Use(middleware.RequireAuth())

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		limit = middleware.RateLimit(d.Limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, d.Logger)
	}
	enforce := cfg.Auth.EnforceRoles

	resource := func(path string, rh crud, writers []identity.Role, readers ...identity.Role) {
		g := authorized.Group(path)
		if len(readers) > 0 {
			g.Use(middleware.RoleAuth(enforce, readers...))
		}
		write := []gin.HandlerFunc{limit, middleware.RoleAuth(enforce, writers...)}

		g.GET("", rh.List)
		g.GET("/:id", rh.Get)
		g.POST("", append(write, rh.Create)...)
		g.PUT("/:id", append(write, rh.Update)...)
		g.PATCH("/:id", append(write, rh.Update)...)
		g.DELETE("/:id", append(write, rh.Delete)...)
	}

	// people and structure: admin writes
	resource("/grades", h.Grade, adminOnly)
	resource("/admins", h.Admin, adminOnly, adminOnly...)
	resource("/teachers", h.Teacher, adminOnly)
	resource("/students", h.Student, adminOnly)
	resource("/parents", h.Parent, adminOnly)
	resource("/subjects", h.Subject, adminOnly)
	resource("/classes", h.Class, adminOnly)

	// teaching: admin or teacher writes
	resource("/lessons", h.Lesson, adminOrTeacher)
	resource("/exams", h.Exam, adminOrTeacher)
	resource("/assignments", h.Assignment, adminOrTeacher)
	resource("/results", h.Result, adminOrTeacher)
	resource("/attendances", h.Attendance, adminOrTeacher)
	resource("/events", h.Event, adminOrTeacher)
	resource("/announcements", h.Announcement, adminOrTeacher)

	export := authorized.Group("/export")
	export.Use(middleware.RoleAuth(enforce, adminOrTeacher...))
	{
		export.GET("/students", h.Export.ExportStudents)
		export.GET("/results", h.Export.ExportResults)
		export.GET("/calendar", h.Calendar.ExportCalendar)
	}

	imports := authorized.Group("/import")
	imports.Use(limit, middleware.RoleAuth(enforce, adminOrTeacher...))
	{
		imports.POST("/events", h.Calendar.ImportEvents)
	}

	uploads := authorized.Group("/uploads")
	uploads.Use(limit, middleware.RoleAuth(enforce, adminOrTeacher...))
	{
		uploads.POST("/images", h.Upload.UploadImage)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})

	return r
}

// health reports liveness and, when a database is wired, its reachability.
func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
