package leave

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("",
			rbac.Authorize(enforcer, "leave", "create"),
			middleware.RateLimitByUser(rate.Limit(5), 10),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("", rbac.Authorize(enforcer, "leave", "read_all"), handler.GetAll)
		leaves.GET("/employee/:id", rbac.Authorize(enforcer, "leave", "read_own"), handler.GetByEmployee)
		leaves.GET("/:id", rbac.Authorize(enforcer, "leave", "read_own"), handler.GetByID)
		leaves.GET("/:id/certificate", rbac.Authorize(enforcer, "leave", "read_own"), handler.Certificate)
		leaves.PUT("/:id/status", rbac.Authorize(enforcer, "leave", "decide"), handler.Decide)
		leaves.DELETE("/:id", rbac.Authorize(enforcer, "leave", "cancel"), handler.Cancel)
	}
}
