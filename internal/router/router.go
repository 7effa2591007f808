package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskloop/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/auth", handlers.Auth.Authenticate)
	r.POST("/auth/register", handlers.Auth.Register)

	// Protected routes
	r.POST("/task", authMiddleware(handlers.Task.CreateTask))
	r.GET("/task/user/{id}", authMiddleware(handlers.Task.GetUserTasks))
	r.GET("/task/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/task/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/task/{id}", authMiddleware(handlers.Task.DeleteTask))

	return r
}
