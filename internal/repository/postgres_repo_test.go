package repository

import (
	"testing"
	"time"
)

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresSessionRepoはSessionRepositoryインターフェースを満たすことを検証
func TestPostgresSessionRepo_ImplementsInterface(t *testing.T) {
	var _ SessionRepository = (*PostgresSessionRepo)(nil)
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresSessionRepoが正しく初期化されることを検証
func TestNewPostgresSessionRepo_Initializes(t *testing.T) {
	repo := NewPostgresSessionRepo(nil, 90*24*time.Hour)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
	if repo.retention != 90*24*time.Hour {
		t.Errorf("retention = %v, want %v", repo.retention, 90*24*time.Hour)
	}
}

// intervalStringがPostgreSQLのinterval表現を生成することを検証
func TestIntervalString(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"90 days", 90 * 24 * time.Hour, "7776000 seconds"},
		{"1 hour", time.Hour, "3600 seconds"},
		{"zero", 0, "0 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := intervalString(tt.d); got != tt.want {
				t.Errorf("intervalString(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
