package repositories

import (
	"context"
	"time"

	"github.com/anhngq/blogary/internal/engagement"
	"github.com/anhngq/blogary/internal/models"
	"gorm.io/gorm"
)

// ListSeriesQuery carries the filters for a paginated series listing.
type ListSeriesQuery struct {
	Search string
	Page   int
	Limit  int
	Viewer *engagement.Viewer
}

// SeriesRepository defines the interface for series data operations
type SeriesRepository interface {
	CreateSeries(ctx context.Context, series *models.Series) error
	GetSeriesByID(ctx context.Context, id string) (*models.Series, error)
	GetVisibleSeries(ctx context.Context, id string, viewer *engagement.Viewer) (*models.Series, error)
	ListSeries(ctx context.Context, q ListSeriesQuery) ([]models.Series, int64, error)
	UpdateSeries(ctx context.Context, series *models.Series) error
	DeleteSeries(ctx context.Context, id string) error
	ReplaceTags(ctx context.Context, series *models.Series, tags []models.Tag) error
	PublishDue(ctx context.Context, now time.Time) (int64, error)
	Exists(ctx context.Context, id string, viewer *engagement.Viewer) (bool, error)
}

// PostgresSeriesRepository implements SeriesRepository for PostgreSQL
type PostgresSeriesRepository struct {
	db *gorm.DB
}

// NewPostgresSeriesRepository creates a new PostgresSeriesRepository
func NewPostgresSeriesRepository(db *gorm.DB) *PostgresSeriesRepository {
	return &PostgresSeriesRepository{db: db}
}

func (r *PostgresSeriesRepository) CreateSeries(ctx context.Context, series *models.Series) error {
	return r.db.WithContext(ctx).Create(series).Error
}

func (r *PostgresSeriesRepository) GetSeriesByID(ctx context.Context, id string) (*models.Series, error) {
	var series models.Series
	if err := r.db.WithContext(ctx).Preload("Author").Preload("Tags").First(&series, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *PostgresSeriesRepository) GetVisibleSeries(ctx context.Context, id string, viewer *engagement.Viewer) (*models.Series, error) {
	var series models.Series
	query := visibleScope(r.db.WithContext(ctx), viewer).
		Preload("Author").
		Preload("Tags").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return visibleScope(db, viewer).Order("created_at ASC")
		})
	if err := query.First(&series, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *PostgresSeriesRepository) ListSeries(ctx context.Context, q ListSeriesQuery) ([]models.Series, int64, error) {
	query := visibleScope(r.db.WithContext(ctx).Model(&models.Series{}), q.Viewer)
	if q.Search != "" {
		query = query.Where("title ILIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var series []models.Series
	err := query.
		Preload("Author").
		Preload("Tags").
		Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&series).Error
	if err != nil {
		return nil, 0, err
	}
	return series, total, nil
}

func (r *PostgresSeriesRepository) UpdateSeries(ctx context.Context, series *models.Series) error {
	return r.db.WithContext(ctx).Save(series).Error
}

func (r *PostgresSeriesRepository) DeleteSeries(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Series{}, "id = ?", id).Error
}

func (r *PostgresSeriesRepository) ReplaceTags(ctx context.Context, series *models.Series, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(series).Association("Tags").Replace(tags)
}

// PublishDue flips scheduled series whose publish time has arrived.
func (r *PostgresSeriesRepository) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Series{}).
		Where("status = ? AND published_at <= ?", models.StatusScheduled, now).
		Update("status", models.StatusPublished)
	return res.RowsAffected, res.Error
}

// Exists implements engagement.TargetStore for series targets.
func (r *PostgresSeriesRepository) Exists(ctx context.Context, id string, viewer *engagement.Viewer) (bool, error) {
	var count int64
	err := visibleScope(r.db.WithContext(ctx).Model(&models.Series{}), viewer).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
