// Package token はセッションIDの署名付きエンコードを提供する。
// クッキー値 "<sessionID>.<HMAC-SHA256タグ>" をHMAC共有鍵で生成・検証する。
// 暗号化ではなく改竄検知のみを保証する（IDは可視だが真正性が保証される）。
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

const separator = "."

// Sign はセッションIDから署名付きトークンを生成する。
// 出力は "<id>.<base64url(HMAC-SHA256(id, secret))>" 形式の決定的な文字列。
func Sign(id, secret string) string {
	return id + separator + computeTag(id, secret)
}

// Verify は署名付きトークンを検証し、埋め込まれたセッションIDを返す。
// タグの再計算結果と完全一致しない場合（鍵違い、切り詰め、改竄）は
// ("", false) を返す。falseは通常の「未認証」を意味し、エラーではない。
func Verify(token, secret string) (string, bool) {
	idx := strings.LastIndex(token, separator)
	if idx <= 0 || idx == len(token)-1 {
		return "", false
	}

	id := token[:idx]
	tag := token[idx+1:]

	expected := computeTag(id, secret)
	if !hmac.Equal([]byte(expected), []byte(tag)) {
		return "", false
	}

	return id, true
}

// computeTag はHMAC-SHA256タグをパディングなしbase64url形式で計算する。
func computeTag(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
