package router

import (
	"go-auth-api/handler"
	"go-auth-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(authHandler *handler.AuthHandler, userHandler *handler.UserHandler, codec *service.TokenCodec) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Public auth surface.
	mux.Handle("POST /register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("POST /logout", handler.ErrorHandlingMiddleware(authHandler.Logout))

	// Routes behind a verified access token.
	auth := handler.AuthMiddleware(codec)
	mux.Handle("POST /change-password", auth(handler.ErrorHandlingMiddleware(authHandler.ChangePassword)))
	mux.Handle("GET /me", auth(handler.ErrorHandlingMiddleware(authHandler.Me)))

	// User administration requires the users:manage capability (admins
	// pass through the wildcard).
	manage := handler.RequirePermission("users:manage")
	mux.Handle("PUT /users/{id}/role", auth(manage(handler.ErrorHandlingMiddleware(userHandler.UpdateRole))))
	mux.Handle("PUT /users/{id}/permissions", auth(manage(handler.ErrorHandlingMiddleware(userHandler.UpdatePermissions))))

	return mux
}
