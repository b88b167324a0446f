package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/fededelrincon/docchat/internal/api/handlers"
	"github.com/fededelrincon/docchat/internal/api/middleware"
	"github.com/fededelrincon/docchat/internal/auth"
	"github.com/fededelrincon/docchat/internal/config"
	"github.com/fededelrincon/docchat/internal/embedding"
	"github.com/fededelrincon/docchat/internal/llm"
	"github.com/fededelrincon/docchat/internal/rag"
	"github.com/fededelrincon/docchat/internal/vectorstore"
	"github.com/fededelrincon/docchat/pkg/chunker"
	"github.com/fededelrincon/docchat/pkg/tokenizer"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
	}
}

// Setup constructs the pipeline and mounts all routes. Clients are built
// once here and injected; nothing in the pipeline reaches for globals.
func (rt *Router) Setup() (http.Handler, error) {
	r := rt.mux

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(rt.redis, 100, time.Minute)
	r.Use(rl.Limit)

	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	tok, err := tokenizer.ForModel(rt.cfg.LLM.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}
	ch, err := chunker.New(tok, rt.cfg.Pipeline.ChunkSize, rt.cfg.Pipeline.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("init chunker: %w", err)
	}

	gateway := llm.NewGateway(rt.cfg.LLM)
	embedSvc := embedding.NewService(gateway, rt.cfg.LLM.EmbeddingModel)
	store := vectorstore.NewPgVectorStore(rt.db, rt.cfg.Pipeline.Namespace)

	pipeline := rag.NewService(rag.NewFileExtractor(), ch, embedSvc, store, gateway, rag.Options{
		MaxFileSize:       rt.cfg.Pipeline.MaxFileSize,
		ChatModel:         rt.cfg.LLM.ChatModel,
		MaxResponseTokens: rt.cfg.Pipeline.MaxResponseTokens,
		TopK:              rt.cfg.Pipeline.TopK,
	})

	docH := handlers.NewDocumentHandler(pipeline, rt.cfg.Pipeline.MaxFileSize)
	chatH := handlers.NewChatHandler(pipeline)
	statusH := handlers.NewStatusHandler(pipeline)

	r.Route("/api/v1", func(r chi.Router) {
		if rt.cfg.Auth.JWTSecret != "" {
			jwtM := auth.NewJWTMiddleware(rt.cfg.Auth.JWTSecret)
			r.Use(jwtM.Authenticate)
		}

		r.Post("/documents", docH.Upload)
		r.Post("/chat", chatH.Ask)
		r.Get("/status", statusH.Get)
	})

	return r, nil
}
