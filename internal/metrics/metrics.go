// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector は認証フローのPrometheusメトリクスを収集する。
type Collector struct {
	cookieAuthHit   prometheus.Counter
	cookieAuthMiss  prometheus.Counter
	loginSuccess    prometheus.Counter
	loginFail       prometheus.Counter
	callbackLatency prometheus.Histogram
	sessionsSwept   prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cookieAuthHit: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authgate_cookie_auth_hit_total",
			Help: "署名付きクッキーで認証に成功したリクエストの合計数",
		}),
		cookieAuthMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authgate_cookie_auth_miss_total",
			Help: "クッキー認証にミスしプロバイダーへリダイレクトしたリクエストの合計数",
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authgate_login_success_total",
			Help: "OAuthコールバックによるログイン成功の合計数",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authgate_login_fail_total",
			Help: "OAuthコールバックによるログイン失敗の合計数",
		}),
		callbackLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "authgate_callback_latency_seconds",
			Help:    "トークン交換とプロフィール取得を含むコールバック処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "authgate_sessions_swept_total",
			Help: "掃き出しジョブが削除した期限切れセッションの合計数",
		}),
	}

	reg.MustRegister(
		c.cookieAuthHit,
		c.cookieAuthMiss,
		c.loginSuccess,
		c.loginFail,
		c.callbackLatency,
		c.sessionsSwept,
	)

	return c
}

// RecordCookieAuthHit はクッキー認証の成功を記録する。
func (c *Collector) RecordCookieAuthHit() {
	c.cookieAuthHit.Inc()
}

// RecordCookieAuthMiss はクッキー認証のミスを記録する。
func (c *Collector) RecordCookieAuthMiss() {
	c.cookieAuthMiss.Inc()
}

// RecordLoginSuccess はログイン成功を記録する。
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure はログイン失敗を記録する。
func (c *Collector) RecordLoginFailure() {
	c.loginFail.Inc()
}

// RecordCallbackLatency はコールバック処理のレイテンシを記録する。
func (c *Collector) RecordCallbackLatency(duration time.Duration) {
	c.callbackLatency.Observe(duration.Seconds())
}

// RecordSessionsSwept は削除された期限切れセッション数を記録する。
func (c *Collector) RecordSessionsSwept(count int64) {
	c.sessionsSwept.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
