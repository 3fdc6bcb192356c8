package models

import (
	"time"

	"github.com/anhngq/blogary/internal/engagement"
)

// Series groups posts into an ordered collection with its own
// status/visibility lifecycle, mirroring posts.
type Series struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string     `json:"title" gorm:"uniqueIndex;not null"`
	Description string     `json:"description"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`
	Thumbnail   string     `json:"thumbnail"`
	Status      string     `json:"status" gorm:"default:draft;index"`
	Visibility  string     `json:"visibility" gorm:"default:public"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	AuthorID    string     `json:"authorId" gorm:"type:uuid;index;not null"`
	Author      *User      `json:"-" gorm:"foreignKey:AuthorID"`
	Posts       []Post     `json:"posts,omitempty" gorm:"foreignKey:SeriesID"`
	Tags        []Tag      `json:"tags" gorm:"many2many:series_tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// DecoratedSeries mirrors DecoratedPost for series reads.
type DecoratedSeries struct {
	Series
	User *PublicUser `json:"user,omitempty"`
	engagement.Attributes
}

type CreateSeriesRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=500"`
	Thumbnail   string     `json:"thumbnail,omitempty" validate:"omitempty,url"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=draft published scheduled"`
	Visibility  string     `json:"visibility,omitempty" validate:"omitempty,oneof=private public"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	PostIDs     []string   `json:"postIds,omitempty" validate:"omitempty,dive,uuid"`
	Tags        []TagRef   `json:"tags,omitempty" validate:"omitempty,dive"`
}

type UpdateSeriesRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Thumbnail   *string    `json:"thumbnail,omitempty" validate:"omitempty,url"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published scheduled"`
	Visibility  *string    `json:"visibility,omitempty" validate:"omitempty,oneof=private public"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	Tags        []TagRef   `json:"tags,omitempty" validate:"omitempty,dive"`
}

type AddPostsToSeriesRequest struct {
	PostIDs []string `json:"postIds" validate:"required,min=1,dive,uuid"`
}
