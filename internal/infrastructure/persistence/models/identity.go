package models

import (
	"time"

	"github.com/housebill/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Name           string        `gorm:"type:varchar(100);not null"`
	Email          string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string        `gorm:"type:varchar(255);not null"`
	Role           identity.Role `gorm:"type:varchar(20);not null;default:'resident';index"`
	TelegramChatID string        `gorm:"type:varchar(64)"`
	LastLoginAt    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		TelegramChatID:    m.TelegramChatID,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.TelegramChatID = u.TelegramChatID
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
