package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/authgate/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

const userColumns = `id, email, verified_email, name, given_name, picture, locale, created_at`

// scanUser は1行分のユーザーレコードをスキャンする。
func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.VerifiedEmail, &user.Name,
		&user.GivenName, &user.Picture, &user.Locale, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// FindByEmail は指定emailのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// UpsertOnFirstLogin は初回ログイン時のユーザー登録を行う。
// ON CONFLICT DO NOTHINGにより、同時初回ログインでも片方のINSERTだけが成功し、
// もう片方は既存レコードを読み出す。既存ユーザーのプロフィールは更新しない。
func (r *PostgresUserRepo) UpsertOnFirstLogin(ctx context.Context, user *model.User) (*model.User, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, verified_email, name, given_name, picture, locale, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (email) DO NOTHING`,
		user.ID, user.Email, user.VerifiedEmail, user.Name,
		user.GivenName, user.Picture, user.Locale, user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	// INSERTが成功したか既存レコードが勝ったかに関わらず、emailで勝者を読み出す
	existing, err := r.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("user disappeared after upsert: %s", user.Email)
	}

	return existing, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
