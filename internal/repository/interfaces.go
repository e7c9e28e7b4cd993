// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/authgate/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定emailのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// UpsertOnFirstLogin は初回ログイン時のユーザー登録を行う。
	// 同一emailのユーザーが既に存在する場合はその既存レコードをそのまま返し、
	// プロバイダー側のプロフィール変更は無視する。同時初回ログインでも
	// emailのUNIQUE制約により重複レコードは作られない。
	UpsertOnFirstLogin(ctx context.Context, user *model.User) (*model.User, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error

	// FindByID は指定IDのセッションを取得する。
	// 見つからない場合、または保持期間を超過している場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)

	// DeleteExpired は保持期間を超過したセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context, retention time.Duration) (int64, error)
}
