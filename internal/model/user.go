// Package model はドメインモデルを定義する。
package model

import "time"

// User は認証済みユーザーを表す。
// 初回ログイン成功時に1回だけ作成され、以降プロバイダー側のプロフィール変更は反映しない。
// 同一emailのユーザーは高々1人（usersテーブルのUNIQUE制約で保証）。
type User struct {
	ID            string
	Email         string
	VerifiedEmail bool
	Name          string
	GivenName     string
	Picture       string
	Locale        string
	CreatedAt     time.Time
}

// Session はブラウザ1つ分のログインセッションを表す。
// IDはサーバー側で割り当てる推測不能な不透明識別子で、クライアントには
// 署名付きトークンとしてのみ渡す。作成から保持期間（デフォルト90日）を
// 超えたセッションは無効として扱う。
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}
