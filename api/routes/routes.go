package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lolstats/api/handlers"
	"lolstats/api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 15 * time.Second

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
	server *http.Server
}

// EngineOptions configures the middlewares of the engine.
type EngineOptions struct {
	Logger      zerolog.Logger
	RateLimiter *middleware.RateLimiter
	Origins     []string
}

// NewEngine creates the gin engine with the shared middlewares.
func NewEngine(opts EngineOptions) *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(opts.Logger),
		middleware.AccessLog(opts.Logger),
		middleware.Metrics(),
	)

	corsConfig := cors.DefaultConfig()
	if len(opts.Origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.Origins
	}
	corsConfig.ExposeHeaders = []string{"Retry-After", middleware.RequestIDHeader}
	engine.Use(cors.New(corsConfig))

	if opts.RateLimiter != nil {
		engine.Use(opts.RateLimiter.Handler())
	}

	return engine
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group(""),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.RiotHandler:
			r.registerRiotHandler(handler)
		case *handlers.UserHandler:
			r.registerUserHandler(handler)
		case *handlers.MatchHandler:
			r.registerMatchHandler(handler)
		case *handlers.ChampionStatsHandler:
			r.registerChampionStatsHandler(handler)
		case *handlers.CrawlHandler:
			r.api.GET("/scrape", handler.Scrape)
		case *handlers.HealthHandler:
			r.api.GET("/health", handler.GetHealth)
		}
	}
}

// Register the riot proxy handler.
func (r *Router) registerRiotHandler(handler *handlers.RiotHandler) {
	account := r.api.Group("/account")
	{
		account.GET("/puuid/:puuid", handler.GetAccountByPuuid)
		account.GET("/:gameName/:tagLine", handler.GetAccount)
	}

	r.api.GET("/summoner/:puuid", handler.GetSummoner)
	r.api.GET("/league/:summonerId", handler.GetLeague)
	r.api.GET("/champion-mastery/:puuid", handler.GetChampionMastery)

	match := r.api.Group("/match")
	{
		match.GET("/puuid", handler.GetMatchIds)
		match.GET("/puuid/:id", handler.GetMatchIds)
		match.GET("/matchid/:id", handler.GetMatch)
	}
}

// Register the stored user handler.
func (r *Router) registerUserHandler(handler *handlers.UserHandler) {
	user := r.api.Group("/user")
	{
		user.GET("/get/puuid/:puuid", handler.GetUserByPuuid)
		user.GET("/get/:gameName/:tagLine", handler.GetUser)
		user.POST("/update", handler.UpdateUser)
		user.POST("/sync/puuid/:puuid", handler.SyncByPuuid)
		user.POST("/sync/:gameName/:tagLine", handler.SyncByRiotId)
	}
}

// Register the stored match handler.
func (r *Router) registerMatchHandler(handler *handlers.MatchHandler) {
	match := r.api.Group("/match")
	{
		match.GET("/get", handler.GetMatches)
		match.GET("/get/matchId/:id", handler.GetMatchById)
		match.GET("/get/puuid/:puuid", handler.GetMatchesByPuuid)
		match.POST("/update", handler.UpdateMatches)
		match.GET("/badges/:matchId/:puuid", handler.GetBadges)
	}
}

// Register the champion stats handler.
func (r *Router) registerChampionStatsHandler(handler *handlers.ChampionStatsHandler) {
	stats := r.api.Group("/champion-stats")
	{
		stats.GET("", handler.GetAllChampionStats)
		stats.GET("/:key", handler.GetChampionStats)
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (r *Router) Run(ctx context.Context, addr string) error {
	r.server = &http.Server{
		Addr:              addr,
		Handler:           r.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- r.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return r.server.Shutdown(shutdownCtx)
}
