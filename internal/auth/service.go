// Package auth はOAuth認証フローとセッション発行を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/authgate/internal/model"
	"github.com/hitoshi/authgate/internal/repository"
	"github.com/hitoshi/authgate/internal/token"
)

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
type OAuthProvider interface {
	// AuthCodeURL はOAuth認可URLを生成する。ネットワーク呼び出しは行わない。
	AuthCodeURL() string
	// Exchange は認可コードをトークンに交換し、ユーザープロフィールを取得する。
	Exchange(ctx context.Context, code string) (*Profile, error)
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	CookieSecret string
}

// Service は認証に関するビジネスロジックを提供する。
// 署名付きクッキーによる高速パスと、OAuthコールバックによるログインパスを持つ。
type Service struct {
	oauth       OAuthProvider
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	oauth OAuthProvider,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	config ServiceConfig,
) *Service {
	return &Service{
		oauth:       oauth,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// AuthCodeURL はOAuth認可URLを生成する。
func (s *Service) AuthCodeURL() string {
	return s.oauth.AuthCodeURL()
}

// AuthenticateCookie は署名付きクッキー値からユーザーを解決する。
// 署名検証失敗・セッション不在・期限切れは (nil, nil) を返す。
// 認証ミスであってエラーではなく、呼び出し側は匿名として扱う。
// 有効なセッションが存在しないユーザーを参照している場合は
// model.ErrSessionOrphanedを返す。ストア破損の兆候であり、認証ミスとは区別する。
func (s *Service) AuthenticateCookie(ctx context.Context, rawToken string) (*model.User, error) {
	if rawToken == "" {
		return nil, nil
	}

	sessionID, ok := token.Verify(rawToken, s.config.CookieSecret)
	if !ok {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		slog.Error("session references missing user",
			slog.String("session_id", session.ID),
			slog.String("user_id", session.UserID),
		)
		return nil, model.ErrSessionOrphaned
	}

	return user, nil
}

// HandleCallback はOAuthコールバックを処理し、セッションを発行して署名付きトークンを返す。
// プロバイダーとの交換・プロフィール取得が両方成功するまで、
// ユーザー・セッション・クッキーのいずれも作成しない。
func (s *Service) HandleCallback(ctx context.Context, code string) (string, error) {
	// 1. 認可コードをトークンに交換し、プロフィールを取得
	profile, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	// 2. emailをキーにユーザーを解決（初回ログインなら作成）
	user, err := s.userRepo.UpsertOnFirstLogin(ctx, &model.User{
		ID:            uuid.New().String(),
		Email:         profile.Email,
		VerifiedEmail: profile.VerifiedEmail,
		Name:          profile.Name,
		GivenName:     profile.GivenName,
		Picture:       profile.Picture,
		Locale:        profile.Locale,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upsert user: %w", err)
	}

	// 3. セッションを発行
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("session_id", session.ID),
	)

	// 4. セッションIDを署名してクッキー値にする
	return token.Sign(session.ID, s.config.CookieSecret), nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
