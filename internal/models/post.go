package models

import (
	"time"

	"github.com/anhngq/blogary/internal/engagement"
)

// Publication status shared by posts and series.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

// Read visibility shared by posts and series.
const (
	VisibilityPrivate = "private"
	VisibilityPublic  = "public"
)

// Post represents a blog post authored by a user
type Post struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string     `json:"title" gorm:"uniqueIndex;not null"`
	Description string     `json:"description" gorm:"not null"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`
	Thumbnail   string     `json:"thumbnail"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	Status      string     `json:"status" gorm:"default:draft;index"`
	Visibility  string     `json:"visibility" gorm:"default:public"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	AuthorID    string     `json:"authorId" gorm:"type:uuid;index;not null"`
	Author      *User      `json:"-" gorm:"foreignKey:AuthorID"`
	SeriesID    *string    `json:"seriesId,omitempty" gorm:"type:uuid;index"`
	Tags        []Tag      `json:"tags" gorm:"many2many:post_tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// DecoratedPost is a post with its author and engagement attributes
// merged inline, the shape list and detail reads return.
type DecoratedPost struct {
	Post
	User *PublicUser `json:"user,omitempty"`
	engagement.Attributes
}

type TagRef struct {
	ID   string `json:"id,omitempty" validate:"omitempty,uuid"`
	Name string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
}

type CreatePostRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"required,max=500"`
	Content     string     `json:"content" validate:"required"`
	Thumbnail   string     `json:"thumbnail,omitempty" validate:"omitempty,url"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=draft published scheduled"`
	Visibility  string     `json:"visibility,omitempty" validate:"omitempty,oneof=private public"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	Tags        []TagRef   `json:"tags,omitempty" validate:"omitempty,dive"`
}

type UpdatePostRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Content     *string    `json:"content,omitempty"`
	Thumbnail   *string    `json:"thumbnail,omitempty" validate:"omitempty,url"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published scheduled"`
	Visibility  *string    `json:"visibility,omitempty" validate:"omitempty,oneof=private public"`
	ScheduledAt *time.Time `json:"scheduledAt,omitempty"`
	Tags        []TagRef   `json:"tags,omitempty" validate:"omitempty,dive"`
}
