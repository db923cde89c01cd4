package mapping

import (
	"database/sql"

	"github.com/teaminfinity/expense_management/internal/core/domain"
	"github.com/teaminfinity/expense_management/internal/models"
)

// ToModelUser converts a domain User to a model User.
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		CompanyID:    d.CompanyID,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FullName:     d.FullName,
		Role:         string(d.Role),
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
	if d.ManagerID != nil {
		m.ManagerID = sql.NullString{String: *d.ManagerID, Valid: true}
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User.
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		CompanyID:    m.CompanyID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName,
		Role:         domain.Role(m.Role),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
	if m.ManagerID.Valid {
		managerID := m.ManagerID.String
		d.ManagerID = &managerID
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		expiry := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &expiry
	}
	return d
}

// ToDomainUserSlice converts a slice of model Users to domain Users.
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
