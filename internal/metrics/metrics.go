// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// HTTPミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
	RecordUserCreated()
	RecordUsersDeleted(count int64)
	RecordExerciseAdded()
	RecordExercisesDeleted(count int64)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	usersCreated     prometheus.Counter
	usersDeleted     prometheus.Counter
	exercisesAdded   prometheus.Counter
	exercisesDeleted prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "exercisetracker_http_requests_total",
			Help: "ルート・メソッド・ステータスコード別のリクエスト数",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "exercisetracker_http_request_duration_seconds",
			Help:    "リクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "exercisetracker_users_created_total",
			Help: "作成されたユーザーの合計数",
		}),
		usersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "exercisetracker_users_deleted_total",
			Help: "一括削除されたユーザーの合計数",
		}),
		exercisesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "exercisetracker_exercises_added_total",
			Help: "追加されたエクササイズの合計数",
		}),
		exercisesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "exercisetracker_exercises_deleted_total",
			Help: "一括削除されたエクササイズの合計数",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.usersCreated,
		c.usersDeleted,
		c.exercisesAdded,
		c.exercisesDeleted,
	)

	return c
}

// RecordHTTPRequest はリクエスト1件の結果とレイテンシを記録する。
// routeにはパスパラメータを含まないルートパターンを渡す。
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordUserCreated はユーザー作成を記録する。
func (c *Collector) RecordUserCreated() {
	c.usersCreated.Inc()
}

// RecordUsersDeleted は一括削除されたユーザー数を記録する。
func (c *Collector) RecordUsersDeleted(count int64) {
	c.usersDeleted.Add(float64(count))
}

// RecordExerciseAdded はエクササイズ追加を記録する。
func (c *Collector) RecordExerciseAdded() {
	c.exercisesAdded.Inc()
}

// RecordExercisesDeleted は一括削除されたエクササイズ数を記録する。
func (c *Collector) RecordExercisesDeleted(count int64) {
	c.exercisesDeleted.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
