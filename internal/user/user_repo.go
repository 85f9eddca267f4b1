package user

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	UpdateProfile(ctx context.Context, email string, fields map[string]any) (int64, error)
	UpdatePhoto(ctx context.Context, email, dataURL, filename string, updatedAt time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return &u, err
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *repository) UpdateProfile(ctx context.Context, email string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", email).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *repository) UpdatePhoto(ctx context.Context, email, dataURL, filename string, updatedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"profile_image":            dataURL,
			"profile_image_filename":   filename,
			"profile_image_updated_at": updatedAt,
		})
	return res.RowsAffected, res.Error
}
