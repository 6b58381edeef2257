package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/GoSim-25-26J-441/go-identity-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/api/http/middleware"
	identityhttp "github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/http"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/repository"
	"github.com/GoSim-25-26J-441/go-identity-backend/internal/identity/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sql.DB
	Accounts    *service.AccountService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	mirror := repository.NewUserMirrorRepository(dep.DB)
	identityhttp.New(dep.Accounts, mirror).Register(api.Group("/identity"))

	return r
}
