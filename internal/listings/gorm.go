package listings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "refashion/internal/models"
	"refashion/internal/refashionerrors"
)

// listingRecord is the postgres row behind a listing
type listingRecord struct {
	ID            string `gorm:"primaryKey;size:64"`
	Title         string `gorm:"not null"`
	Description   string
	Price         float64 `gorm:"not null"`
	Brand         string  `gorm:"index"`
	Size          string
	Condition     string
	Category      string `gorm:"index"`
	Images        string `gorm:"type:text"`
	CreatedAt     int64  `gorm:"autoCreateTime:false;index"`
	UserID        string `gorm:"index"`
	UserName      string
	UserEmail     string
	DetectedClass string
}

func (listingRecord) TableName() string { return "listings" }

func toRecord(l model.Listing) (listingRecord, error) {
	images, err := json.Marshal(l.Images)
	if err != nil {
		return listingRecord{}, fmt.Errorf("listings: encode images: %w", err)
	}
	return listingRecord{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Price:         l.Price,
		Brand:         l.Brand,
		Size:          l.Size,
		Condition:     l.Condition,
		Category:      l.Category,
		Images:        string(images),
		CreatedAt:     l.CreatedAt,
		UserID:        l.UserID,
		UserName:      l.UserName,
		UserEmail:     l.UserEmail,
		DetectedClass: l.DetectedClass,
	}, nil
}

func (r listingRecord) toListing() model.Listing {
	images := []string{}
	if r.Images != "" {
		// rows written by hand may carry malformed image lists; those read back as empty
		_ = json.Unmarshal([]byte(r.Images), &images)
	}
	return model.Listing{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		Brand:         r.Brand,
		Size:          r.Size,
		Condition:     r.Condition,
		Category:      r.Category,
		Images:        images,
		CreatedAt:     r.CreatedAt,
		UserID:        r.UserID,
		UserName:      r.UserName,
		UserEmail:     r.UserEmail,
		DetectedClass: r.DetectedClass,
	}
}

// GormRepository stores listings in postgres
type GormRepository struct {
	db *gorm.DB
}

// OpenPostgres connects to the listings database at dsn
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("listings: connect postgres: %w", err)
	}
	return db, nil
}

// NewGormRepository creates a repository on db
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate creates or updates the listings table
func (r *GormRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&listingRecord{}); err != nil {
		return fmt.Errorf("listings: migrate: %w", err)
	}
	return nil
}

// All returns every listing ordered by creation time
func (r *GormRepository) All(ctx context.Context) ([]model.Listing, error) {
	var records []listingRecord
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listings: query: %w", err)
	}
	out := make([]model.Listing, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toListing())
	}
	return out, nil
}

// Add inserts listing
func (r *GormRepository) Add(ctx context.Context, listing model.Listing) error {
	rec, err := toRecord(listing)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("listings: insert %s: %w", listing.ID, err)
	}
	return nil
}

// Find returns the listing with id
func (r *GormRepository) Find(ctx context.Context, id string) (model.Listing, error) {
	var rec listingRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Listing{}, fmt.Errorf("%w - %s", refashionerrors.ErrListingNotFound, id)
	}
	if err != nil {
		return model.Listing{}, fmt.Errorf("listings: find %s: %w", id, err)
	}
	return rec.toListing(), nil
}

// Close releases the underlying connection pool
func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
