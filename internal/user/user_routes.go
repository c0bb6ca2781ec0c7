package user

import (
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), handler.Login)
		auth.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}

	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.POST("/employees", rbac.Authorize(enforcer, "user", "create"), handler.CreateEmployee)
		users.GET("/employees", rbac.Authorize(enforcer, "user", "read_all"), handler.GetEmployees)
		users.GET("/employees/:id", rbac.Authorize(enforcer, "user", "read_all"), handler.GetEmployee)
		users.PUT("/:id", handler.UpdateProfile)
	}
}
