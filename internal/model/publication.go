package model

import "time"

type Publication struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Category   string    `gorm:"size:120;not null" json:"category"`
	Annotation string    `gorm:"type:text;not null" json:"annotation"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"<-:create;not null;index" json:"created_at"`

	// Authorship is fixed at insert time, gorm never writes it on update
	AuthorID uint  `gorm:"<-:create;not null;index" json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
