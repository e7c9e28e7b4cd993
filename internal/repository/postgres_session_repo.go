package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/authgate/internal/model"
)

// PostgresSessionRepo はPostgreSQLを使用したセッションリポジトリ。
// 保持期間はリポジトリ生成時に注入し、FindByIDでの読み取り時フィルタと
// DeleteExpiredでの掃き出しの両方に同じ値を使用する。
type PostgresSessionRepo struct {
	db        *sql.DB
	retention time.Duration
}

// NewPostgresSessionRepo はPostgresSessionRepoを生成する。
func NewPostgresSessionRepo(db *sql.DB, retention time.Duration) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db, retention: retention}
}

// Create はセッションを作成する。
func (r *PostgresSessionRepo) Create(ctx context.Context, session *model.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at) VALUES ($1, $2, $3)`,
		session.ID, session.UserID, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID は指定IDのセッションを取得する。
// 見つからない場合、または保持期間を超過している場合はnilを返す。
// 期限切れレコードは掃き出しジョブによる削除を待たず、読み取り時点で不可視になる。
func (r *PostgresSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	session := &model.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at
		 FROM sessions
		 WHERE id = $1 AND created_at > now() - $2::interval`,
		id, intervalString(r.retention),
	).Scan(&session.ID, &session.UserID, &session.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return session, nil
}

// DeleteExpired は保持期間を超過したセッションを削除し、削除件数を返す。
// 冪等: 削除対象がない場合でもエラーにならない。
func (r *PostgresSessionRepo) DeleteExpired(ctx context.Context, retention time.Duration) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE created_at < now() - $1::interval`,
		intervalString(retention),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// intervalString はtime.DurationをPostgreSQLのinterval表現に変換する。
func intervalString(d time.Duration) string {
	return fmt.Sprintf("%d seconds", int64(d.Seconds()))
}

// compile-time interface check
var _ SessionRepository = (*PostgresSessionRepo)(nil)
