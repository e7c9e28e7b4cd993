// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/authgate/internal/model"
)

// tokenCookieName は署名付きセッショントークンを保持するクッキー名。
const tokenCookieName = "token"

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	AuthCodeURL() string
	AuthenticateCookie(ctx context.Context, rawToken string) (*model.User, error)
	HandleCallback(ctx context.Context, code string) (string, error)
}

// MetricsRecorder は認証ハンドラーが記録するメトリクスのインターフェース。
type MetricsRecorder interface {
	RecordCookieAuthHit()
	RecordCookieAuthMiss()
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordCallbackLatency(d time.Duration)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain string
	CookieSecure bool
	CookieMaxAge int // セッション保持期間に合わせたクッキーの有効期間（秒）
}

// AuthHandler はOAuth認証フローのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	metrics MetricsRecorder
	config  AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface, metrics MetricsRecorder, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		metrics: metrics,
		config:  config,
	}
}

// Root はルートへのリクエストを処理する。
// GET /
// 有効な署名付きクッキーを持つ場合はユーザープロフィールをJSONで返し、
// それ以外（クッキーなし・署名不正・セッション不在・期限切れ）は
// プロバイダーの認可URLへ302リダイレクトする。
// セッションが存在するのにユーザーが解決できない場合はストア破損として500を返す。
func (h *AuthHandler) Root(w http.ResponseWriter, r *http.Request) {
	var rawToken string
	if cookie, err := r.Cookie(tokenCookieName); err == nil {
		rawToken = cookie.Value
	}

	user, err := h.service.AuthenticateCookie(r.Context(), rawToken)
	if err != nil {
		slog.Error("cookie authentication failed", slog.String("error", err.Error()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if user == nil {
		// 認証ミス: プロバイダーの認可URLへリダイレクト。
		// この経路ではプロバイダーへのネットワーク呼び出しは発生しない。
		h.metrics.RecordCookieAuthMiss()
		http.Redirect(w, r, h.service.AuthCodeURL(), http.StatusFound)
		return
	}

	h.metrics.RecordCookieAuthHit()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":             user.ID,
		"email":          user.Email,
		"verified_email": user.VerifiedEmail,
		"name":           user.Name,
		"given_name":     user.GivenName,
		"picture":        user.Picture,
		"locale":         user.Locale,
		"created":        user.CreatedAt,
	})
}

// Callback はOAuthコールバックを処理する。
// GET /google/callback?code=xxx
// 交換とプロフィール取得が成功した場合のみセッションを作成し、
// 署名付きトークンをHTTP Onlyクッキーとして設定してルートへリダイレクトする。
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	start := time.Now()
	signed, err := h.service.HandleCallback(r.Context(), code)
	h.metrics.RecordCallbackLatency(time.Since(start))

	if err != nil {
		// トークンや認可コードの値はログに残さない
		h.metrics.RecordLoginFailure()
		slog.Error("oauth callback failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordLoginSuccess()

	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookieName,
		Value:    signed,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   h.config.CookieMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}
