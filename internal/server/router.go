package server

import (
	"context"
	"net/http"

	"nutrisync/internal/handlers"
	applog "nutrisync/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")

	mux.HandleFunc("/api/units", handlers.Units)
	mux.HandleFunc("/api/convert", handlers.Convert)
	mux.HandleFunc("/api/scale", handlers.Scale)
	applog.Debug(context.Background(), "route registered", "path", "/api/units")
	applog.Debug(context.Background(), "route registered", "path", "/api/convert")
	applog.Debug(context.Background(), "route registered", "path", "/api/scale")
	mux.HandleFunc("/api/usda/search", handlers.USDASearch)
	mux.HandleFunc("/api/usda/food/", handlers.USDAFood)
	mux.HandleFunc("/api/usda/recent", handlers.RecentQueries)
	applog.Debug(context.Background(), "route registered", "path", "/api/usda/")

	mux.HandleFunc("/login", handlers.Login)
	applog.Debug(context.Background(), "route registered", "path", "/login")
	mux.HandleFunc("/signup", handlers.Signup)
	applog.Debug(context.Background(), "route registered", "path", "/signup")
	mux.HandleFunc("/logout", handlers.Logout)
	applog.Debug(context.Background(), "route registered", "path", "/logout")

	mux.Handle("/app", handlers.RequireAuthentication(http.HandlerFunc(handlers.Dashboard)))
	mux.Handle("/app/", handlers.RequireAuthentication(http.HandlerFunc(handlers.Dashboard)))
	mux.Handle("/app/preferences", handlers.RequireAuthentication(http.HandlerFunc(handlers.Preferences)))
	mux.Handle("/app/foods/", handlers.RequireAuthentication(http.HandlerFunc(handlers.FoodPage)))
	applog.Debug(context.Background(), "route registered", "path", "/app", "protected", true)
	mux.Handle("/app/api/foods", handlers.RequireAuthentication(http.HandlerFunc(handlers.FoodResource)))
	mux.Handle("/app/api/foods/", handlers.RequireAuthentication(http.HandlerFunc(handlers.FoodResource)))
	applog.Debug(context.Background(), "route registered", "path", "/app/api/foods", "protected", true)

	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
