// Package model defines database models
package model

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName       string    `gorm:"size:120;not null" json:"full_name"`
	Email          string    `gorm:"size:200;uniqueIndex;not null" json:"email"` // Always stored normalized, see validators.NormalizeEmail
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	CreatedAt      time.Time `gorm:"<-:create;not null" json:"created_at"`

	Publications []Publication `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
