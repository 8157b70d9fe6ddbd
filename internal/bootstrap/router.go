package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/taskflow-hq/taskflow-backend/internal/activity"
	activityhttp "github.com/taskflow-hq/taskflow-backend/internal/activity/http"
	httpapi "github.com/taskflow-hq/taskflow-backend/internal/api/http"
	"github.com/taskflow-hq/taskflow-backend/internal/api/http/middleware"
	"github.com/taskflow-hq/taskflow-backend/internal/auth"
	"github.com/taskflow-hq/taskflow-backend/internal/issues"
	issueshttp "github.com/taskflow-hq/taskflow-backend/internal/issues/http"
	"github.com/taskflow-hq/taskflow-backend/internal/projects"
	projectshttp "github.com/taskflow-hq/taskflow-backend/internal/projects/http"
	"github.com/taskflow-hq/taskflow-backend/internal/store"
	"github.com/taskflow-hq/taskflow-backend/internal/tasks"
	taskshttp "github.com/taskflow-hq/taskflow-backend/internal/tasks/http"
	"github.com/taskflow-hq/taskflow-backend/internal/team"
	teamhttp "github.com/taskflow-hq/taskflow-backend/internal/team/http"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Store          store.Store
	AuthClient     *fbauth.Client // nil selects the dev header middleware
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(dep.AllowedOrigins) == 1 && dep.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = dep.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestID())
	if dep.RateLimitRPS > 0 {
		api.Use(middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	}

	if dep.AuthClient != nil {
		api.Use(auth.Middleware(dep.AuthClient, dep.Store))
	} else {
		api.Use(auth.DevMiddleware(dep.Store))
	}

	audit := activity.NewLogger(dep.Store)
	feed := activity.NewFeed(dep.Store)

	projectsHandler := projectshttp.New(projects.NewService(dep.Store, audit))
	tasksHandler := taskshttp.New(tasks.NewService(dep.Store, audit))
	issuesHandler := issueshttp.New(issues.NewService(dep.Store, audit))
	teamHandler := teamhttp.New(team.NewService(dep.Store, audit))
	activityHandler := activityhttp.New(feed)

	projectsGroup := api.Group("/projects")
	projectsHandler.Register(projectsGroup)
	tasksHandler.RegisterProjectSubroutes(projectsGroup)
	issuesHandler.RegisterProjectSubroutes(projectsGroup)
	teamHandler.RegisterProjectSubroutes(projectsGroup)
	activityHandler.RegisterProjectSubroutes(projectsGroup)

	tasksHandler.Register(api.Group("/tasks"))
	issuesHandler.Register(api.Group("/issues"))
	teamHandler.Register(api.Group("/team"))
	activityHandler.Register(api.Group("/activity"))

	return r
}
