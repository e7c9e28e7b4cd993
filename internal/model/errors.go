package model

import "errors"

// ErrSessionOrphaned は有効なセッションが存在しないユーザーを参照していることを示す。
// 認証ミス（再ログインで回復可能）とは区別し、ストア破損の兆候として
// 500エラーで表面化させる。再認証パスへ黙ってフォールバックしてはならない。
var ErrSessionOrphaned = errors.New("session references a nonexistent user")
