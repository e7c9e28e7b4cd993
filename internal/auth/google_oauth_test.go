package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestGoogleOAuthProvider_AuthCodeURL_ContainsRequiredParams(t *testing.T) {
	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		ClientID:    "test-client-id",
		RedirectURL: "http://localhost:8080/google/callback",
	})

	rawURL := provider.AuthCodeURL()
	if rawURL == "" {
		t.Fatal("expected non-empty URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("AuthCodeURL returned unparsable URL: %v", err)
	}
	if parsed.Host != "accounts.google.com" {
		t.Errorf("host = %q, want %q", parsed.Host, "accounts.google.com")
	}

	query := parsed.Query()
	tests := []struct {
		param string
		want  string
	}{
		{"client_id", "test-client-id"},
		{"redirect_uri", "http://localhost:8080/google/callback"},
		{"prompt", "consent"},
		{"response_type", "code"},
		{"scope", "openid email profile"},
		{"access_type", "offline"},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			if got := query.Get(tt.param); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.param, got, tt.want)
			}
		})
	}
}

func TestGoogleOAuthProvider_Exchange_Success(t *testing.T) {
	// Google Token Endpoint
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token request form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "authorization_code" {
			t.Errorf("grant_type = %q, want %q", got, "authorization_code")
		}
		if got := r.PostForm.Get("code"); got != "test-auth-code" {
			t.Errorf("code = %q, want %q", got, "test-auth-code")
		}
		if got := r.PostForm.Get("redirect_uri"); got != "http://localhost:8080/google/callback" {
			t.Errorf("redirect_uri = %q, want %q", got, "http://localhost:8080/google/callback")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "test-access-token",
			"token_type":    "Bearer",
			"expires_in":    3600,
			"refresh_token": "test-refresh-token",
		})
	}))
	defer tokenServer.Close()

	// Google UserInfo Endpoint
	userInfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Authorizationヘッダーの検証
		authHeader := r.Header.Get("Authorization")
		if authHeader != "Bearer test-access-token" {
			t.Errorf("unexpected Authorization header: %q", authHeader)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":             "109876543210",
			"email":          "user@gmail.com",
			"verified_email": true,
			"name":           "Google User",
			"given_name":     "Google",
			"picture":        "https://example.com/photo.jpg",
			"locale":         "ja",
		})
	}))
	defer userInfoServer.Close()

	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURL:  "http://localhost:8080/google/callback",
		TokenURL:     tokenServer.URL,
		UserInfoURL:  userInfoServer.URL,
	})

	profile, err := provider.Exchange(context.Background(), "test-auth-code")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	if profile == nil {
		t.Fatal("expected non-nil profile")
	}
	if profile.Email != "user@gmail.com" {
		t.Errorf("email = %q, want %q", profile.Email, "user@gmail.com")
	}
	if !profile.VerifiedEmail {
		t.Error("verified_email should be true")
	}
	if profile.Name != "Google User" {
		t.Errorf("name = %q, want %q", profile.Name, "Google User")
	}
	if profile.GivenName != "Google" {
		t.Errorf("given_name = %q, want %q", profile.GivenName, "Google")
	}
	if profile.Locale != "ja" {
		t.Errorf("locale = %q, want %q", profile.Locale, "ja")
	}
}

func TestGoogleOAuthProvider_Exchange_TokenError(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":             "invalid_grant",
			"error_description": "Code was already redeemed.",
		})
	}))
	defer tokenServer.Close()

	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURL:  "http://localhost:8080/google/callback",
		TokenURL:     tokenServer.URL,
	})

	_, err := provider.Exchange(context.Background(), "redeemed-code")
	if err == nil {
		t.Fatal("expected error for token endpoint failure")
	}
	if !strings.Contains(err.Error(), "token") {
		t.Errorf("error should mention token exchange: %v", err)
	}
}

func TestGoogleOAuthProvider_Exchange_EmptyAccessToken(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"token_type": "Bearer"})
	}))
	defer tokenServer.Close()

	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		TokenURL: tokenServer.URL,
	})

	_, err := provider.Exchange(context.Background(), "test-code")
	if err == nil {
		t.Fatal("expected error for empty access token")
	}
}

func TestGoogleOAuthProvider_Exchange_UserInfoError(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "test-access-token"})
	}))
	defer tokenServer.Close()

	userInfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer userInfoServer.Close()

	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		TokenURL:    tokenServer.URL,
		UserInfoURL: userInfoServer.URL,
	})

	_, err := provider.Exchange(context.Background(), "test-code")
	if err == nil {
		t.Fatal("expected error for user info failure")
	}
}

func TestGoogleOAuthProvider_Exchange_EmptyEmail(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "test-access-token"})
	}))
	defer tokenServer.Close()

	userInfoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "123", "name": "No Email"})
	}))
	defer userInfoServer.Close()

	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		TokenURL:    tokenServer.URL,
		UserInfoURL: userInfoServer.URL,
	})

	_, err := provider.Exchange(context.Background(), "test-code")
	if err == nil {
		t.Fatal("expected error when user info lacks email")
	}
}

func TestGoogleOAuthProvider_Exchange_Timeout(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "late"})
	}))
	defer tokenServer.Close()

	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{
		TokenURL: tokenServer.URL,
		Timeout:  50 * time.Millisecond,
	})

	_, err := provider.Exchange(context.Background(), "test-code")
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestNewGoogleOAuthProvider_DefaultEndpoints(t *testing.T) {
	provider := NewGoogleOAuthProvider(GoogleOAuthConfig{})

	if provider.config.AuthURL != defaultGoogleAuthURL {
		t.Errorf("AuthURL = %q, want default", provider.config.AuthURL)
	}
	if provider.config.TokenURL != defaultGoogleTokenURL {
		t.Errorf("TokenURL = %q, want default", provider.config.TokenURL)
	}
	if provider.config.UserInfoURL != defaultGoogleUserInfoURL {
		t.Errorf("UserInfoURL = %q, want default", provider.config.UserInfoURL)
	}
	if provider.config.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", provider.config.Timeout)
	}
}
