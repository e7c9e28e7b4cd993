package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/authgate/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	AuthService    AuthServiceInterface
	AuthConfig     AuthHandlerConfig
	Metrics        MetricsRecorder
	MetricsHandler http.Handler
	HealthChecker  HealthChecker
	RateLimiter    *middleware.RateLimiter
	Logger         *slog.Logger
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → SecurityHeaders
//
// コールバックにはクライアントIPごとのレート制限を追加で適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())

	authHandler := NewAuthHandler(deps.AuthService, deps.Metrics, deps.AuthConfig)

	// 認証フロー
	r.Get("/", authHandler.Root)
	r.With(deps.RateLimiter.AuthMiddleware()).Get("/google/callback", authHandler.Callback)

	// 運用エンドポイント
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)

	return r
}
