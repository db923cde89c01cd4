package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teaminfinity/expense_management/internal/apperrors"
	"github.com/teaminfinity/expense_management/internal/core/domain"
	portsrepo "github.com/teaminfinity/expense_management/internal/core/ports/repositories"
	"github.com/teaminfinity/expense_management/internal/models"
	"github.com/teaminfinity/expense_management/internal/utils/mapping"
)

// PgxUserRepository implements user persistence using pgx.
type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `
	user_id, company_id, email, password_hash, full_name, role, manager_id,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at,
	refresh_token_hash, refresh_token_expiry_time
`

// SaveUser inserts a user or updates its mutable fields on conflict.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	modelUser := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			full_name = EXCLUDED.full_name,
			role = EXCLUDED.role,
			manager_id = EXCLUDED.manager_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by,
			deleted_at = EXCLUDED.deleted_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelUser.UserID,
		modelUser.CompanyID,
		modelUser.Email,
		modelUser.PasswordHash,
		modelUser.FullName,
		modelUser.Role,
		modelUser.ManagerID,
		modelUser.CreatedAt,
		modelUser.CreatedBy,
		modelUser.LastUpdatedAt,
		modelUser.LastUpdatedBy,
		modelUser.DeletedAt,
		modelUser.RefreshTokenHash,
		modelUser.RefreshTokenExpiryTime,
	)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", modelUser.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a non-deleted user by its unique identifier.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	return r.scanUserRow(r.Pool.QueryRow(ctx, query, userID), userID)
}

// FindUserByEmail retrieves a non-deleted user by email address.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL;`
	return r.scanUserRow(r.Pool.QueryRow(ctx, query, email), email)
}

func (r *PgxUserRepository) scanUserRow(row pgx.Row, key string) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.CompanyID,
		&m.Email,
		&m.PasswordHash,
		&m.FullName,
		&m.Role,
		&m.ManagerID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiryTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", key, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// ListUsersByCompany retrieves all non-deleted users of a company.
func (r *PgxUserRepository) ListUsersByCompany(ctx context.Context, companyID string) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for company %s: %w", companyID, err)
	}
	defer rows.Close()
	return r.scanUsers(rows)
}

// ListUsersByCompanyAndRole retrieves a company's users filtered by role.
func (r *PgxUserRepository) ListUsersByCompanyAndRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE company_id = $1 AND role = $2 AND deleted_at IS NULL
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to list users for company %s with role %s: %w", companyID, role, err)
	}
	defer rows.Close()
	return r.scanUsers(rows)
}

func (r *PgxUserRepository) scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var modelUsers []models.User
	for rows.Next() {
		var m models.User
		err := rows.Scan(
			&m.UserID,
			&m.CompanyID,
			&m.Email,
			&m.PasswordHash,
			&m.FullName,
			&m.Role,
			&m.ManagerID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&m.DeletedAt,
			&m.RefreshTokenHash,
			&m.RefreshTokenExpiryTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(modelUsers), nil
}

// CountUsersByCompany returns the number of non-deleted users in a company.
func (r *PgxUserRepository) CountUsersByCompany(ctx context.Context, companyID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM users WHERE company_id = $1 AND deleted_at IS NULL;`
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users for company %s: %w", companyID, err)
	}
	return count, nil
}

// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
// A nil hash clears the stored token.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiryTime *time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3
		WHERE user_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, tokenHash, expiryTime)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
