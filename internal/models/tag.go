package models

import "time"

// Tag is attached to posts and series through join tables.
type Tag struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
