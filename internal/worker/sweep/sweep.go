// Package sweep は期限切れセッションの自動削除ジョブを提供する。
// 保持期間（デフォルト90日）を超過したセッション行を日次バッチで削除する。
// 読み取り側は作成時刻でフィルタするため、このジョブはストレージ回収のみを担う。
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ExpiredDeleter は期限切れセッションの削除を抽象化するインターフェース。
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, retention time.Duration) (int64, error)
}

// SweptCounter は削除件数メトリクスの記録インターフェース。
type SweptCounter interface {
	RecordSessionsSwept(count int64)
}

// SweepJob は保持期間を超過したセッションの自動削除ジョブ。
// 日次実行のバッチジョブとして設計されており、冪等な削除処理を保証する。
type SweepJob struct {
	sessions  ExpiredDeleter
	metrics   SweptCounter
	logger    *slog.Logger
	Retention time.Duration // セッション保持期間（デフォルト: 90日）
}

// NewSweepJob は新しいSweepJobを生成する。
// デフォルトの保持期間は90日。
func NewSweepJob(sessions ExpiredDeleter, metrics SweptCounter, logger *slog.Logger) *SweepJob {
	return &SweepJob{
		sessions:  sessions,
		metrics:   metrics,
		logger:    logger,
		Retention: 90 * 24 * time.Hour,
	}
}

// Run は保持期間を超過したセッションを削除する。
// 冪等: 削除対象がない場合でもエラーにならない。
func (j *SweepJob) Run(ctx context.Context) error {
	start := time.Now()

	deletedCount, err := j.sessions.DeleteExpired(ctx, j.Retention)
	if err != nil {
		j.logger.Error("セッション削除ジョブの実行に失敗しました",
			slog.String("error", err.Error()),
			slog.Duration("retention", j.Retention),
		)
		return fmt.Errorf("セッション削除の実行に失敗: %w", err)
	}

	if j.metrics != nil {
		j.metrics.RecordSessionsSwept(deletedCount)
	}

	duration := time.Since(start)
	j.logger.Info("セッション削除ジョブが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Duration("retention", j.Retention),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return nil
}
