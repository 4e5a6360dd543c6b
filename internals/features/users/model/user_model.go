package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string     `gorm:"size:50;unique;not null" json:"username"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`
	FullName     string     `gorm:"size:120;not null" json:"full_name"`
	Email        string     `gorm:"size:160;unique;not null" json:"email"`
	RoleID       *uuid.UUID `gorm:"type:uuid" json:"role_id"`
	// tanpa tag default: nilai false harus benar-benar tersimpan,
	// default:true membuat GORM melewatkan zero value saat insert
	IsActive     bool       `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Relasi
	Role *RoleModel `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
