package bootstrap

import (
	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/devfolio/portfolio-backend/internal/api/http"
	"github.com/devfolio/portfolio-backend/internal/api/http/middleware"
	"github.com/devfolio/portfolio-backend/internal/auth"
	authhttp "github.com/devfolio/portfolio-backend/internal/auth/http"
	authmw "github.com/devfolio/portfolio-backend/internal/auth/middleware"
	"github.com/devfolio/portfolio-backend/internal/contact"
	"github.com/devfolio/portfolio-backend/internal/identity"
	projectshttp "github.com/devfolio/portfolio-backend/internal/projects/http"
	"github.com/devfolio/portfolio-backend/internal/projects/service"
	"github.com/devfolio/portfolio-backend/internal/storage"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string

	Identity *identity.Data
	Sync     *service.SyncService
	Inbox    contact.Inbox

	AuthClient *fbauth.Client
	Login      *auth.LoginClient

	// Uploader may be nil; the uploads route then answers 404.
	Uploader storage.Uploader

	Redis     *redis.Client
	Firestore *firestore.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis, dep.Firestore)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	identity.NewHandler(dep.Identity).Register(api)

	projectsHandler := projectshttp.New(dep.Sync)
	projectsHandler.RegisterPublic(api.Group("/projects"))

	contactHandler := contact.NewHandler(dep.Inbox)
	contactHandler.RegisterPublic(api)

	authHandler := authhttp.NewHandler(dep.Login, dep.AuthClient)
	authHandler.RegisterPublic(api)

	session := api.Group("")
	session.Use(authmw.RequireAuth(dep.AuthClient))
	authHandler.RegisterProtected(session)

	admin := api.Group("/admin")
	admin.Use(authmw.RequireAuth(dep.AuthClient))

	projectsHandler.RegisterAdmin(admin.Group("/projects"))
	contactHandler.RegisterAdmin(admin)
	httpapi.NewDashboardHandler(dep.Sync, dep.Inbox).Register(admin)
	storage.NewHandler(dep.Uploader).Register(admin)

	return r
}
