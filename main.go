package main

import (
	"context"
	"net/http"
	"time"

	"tasknest/backend/cache"
	"tasknest/backend/config"
	"tasknest/backend/handlers"
	"tasknest/backend/llm"
	"tasknest/backend/middleware"
	"tasknest/backend/routes"
	"tasknest/backend/supabase"
)

func main() {

	config.InitLogger()
	config.LoadEnv()
	supabase.Init()

	cacheStore := newCacheStore()
	completer := llm.NewClient(config.LLMBaseURL(), config.LLMModel())

	h := handlers.New(cacheStore, completer)

	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux, h)

	handler := middleware.Chain(
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)(mux)

	addr := ":" + config.Port()
	config.Logger.Info("Server is running on ", addr)
	config.Logger.Fatal(http.ListenAndServe(addr, handler))
}

// newCacheStore prefers Redis when configured; without it list-view
// invalidation degrades to TTL expiry on the in-memory store.
func newCacheStore() cache.Store {
	addr := config.RedisAddr()
	if addr == "" {
		config.Logger.Info("REDIS_ADDR not set, using in-memory cache")
		return cache.NewMemoryStore()
	}

	store := cache.NewRedisStore(addr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		config.Logger.Warn("Redis unreachable, falling back to in-memory cache:", err)
		return cache.NewMemoryStore()
	}
	return store
}
