package repositories

import (
	"context"
	"time"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"gorm.io/gorm"
)

// ListPostsQuery carries the filters for a paginated post listing.
type ListPostsQuery struct {
	Search string
	Page   int
	Limit  int
	Viewer *engagement.Viewer
}

// PostRepository defines the interface for post data operations. GetVisiblePost
// and Exists apply the status/visibility gate; GetPostByID does not and is
// reserved for internal lookups that already checked permissions.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetVisiblePost(ctx context.Context, id string, viewer *engagement.Viewer) (*models.Post, error)
	ListPosts(ctx context.Context, q ListPostsQuery) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id string) error
	ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	GetPostsByIDsAndAuthor(ctx context.Context, ids []string, authorID string) ([]models.Post, error)
	SetSeries(ctx context.Context, postIDs []string, authorID string, seriesID *string) error
	ClearSeries(ctx context.Context, seriesID string) error
	PublishDue(ctx context.Context, now time.Time) (int64, error)
	Exists(ctx context.Context, id string, viewer *engagement.Viewer) (bool, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// visibleScope narrows a query to rows the viewer may read: published and
// public for everyone, plus the viewer's own rows, plus everything for admins.
func visibleScope(db *gorm.DB, viewer *engagement.Viewer) *gorm.DB {
	if viewer != nil && viewer.Admin {
		return db
	}
	if viewer != nil {
		return db.Where("(status = ? AND visibility = ?) OR author_id = ?",
			models.StatusPublished, models.VisibilityPublic, viewer.ID)
	}
	return db.Where("status = ? AND visibility = ?", models.StatusPublished, models.VisibilityPublic)
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Tags").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetVisiblePost(ctx context.Context, id string, viewer *engagement.Viewer) (*models.Post, error) {
	var post models.Post
	query := visibleScope(r.db.WithContext(ctx), viewer).Preload("Author").Preload("Tags")
	if err := query.First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) ListPosts(ctx context.Context, q ListPostsQuery) ([]models.Post, int64, error) {
	query := visibleScope(r.db.WithContext(ctx).Model(&models.Post{}), q.Viewer)
	if q.Search != "" {
		query = query.Where("title ILIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.
		Preload("Author").
		Preload("Tags").
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, "id = ?", id).Error
}

// ReplaceTags swaps the post's tag set for the given one.
func (r *PostgresPostRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (r *PostgresPostRepository) GetPostsByIDsAndAuthor(ctx context.Context, ids []string, authorID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Where("id IN ? AND author_id = ?", ids, authorID).Find(&posts).Error
	return posts, err
}

// SetSeries attaches the author's posts to a series, or detaches them when
// seriesID is nil.
func (r *PostgresPostRepository) SetSeries(ctx context.Context, postIDs []string, authorID string, seriesID *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id IN ? AND author_id = ?", postIDs, authorID).
		Update("series_id", seriesID).Error
}

// ClearSeries detaches every post from the series, used when the series is deleted.
func (r *PostgresPostRepository) ClearSeries(ctx context.Context, seriesID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("series_id = ?", seriesID).
		Update("series_id", nil).Error
}

// PublishDue flips scheduled posts whose publish time has arrived.
func (r *PostgresPostRepository) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("status = ? AND published_at <= ?", models.StatusScheduled, now).
		Update("status", models.StatusPublished)
	return res.RowsAffected, res.Error
}

// Exists implements engagement.TargetStore for post targets.
func (r *PostgresPostRepository) Exists(ctx context.Context, id string, viewer *engagement.Viewer) (bool, error) {
	var count int64
	err := visibleScope(r.db.WithContext(ctx).Model(&models.Post{}), viewer).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
