package notification

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, email string) ([]Notification, error)
	MarkRead(ctx context.Context, email, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	query := `
        INSERT INTO notifications (
            id, recipient_email, category, message, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $6)
    `

	exec := r.execer()
	_, err := exec.ExecContext(
		ctx, query,
		n.ID, n.RecipientEmail, n.Category, n.Message, n.Status, n.CreatedAt,
	)
	return err
}

func (r *repository) ListByRecipient(ctx context.Context, email string) ([]Notification, error) {
	var items []Notification
	err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *repository) MarkRead(ctx context.Context, email, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND recipient_email = ?", id, email).
		Update("status", StatusRead)
	return res.RowsAffected, res.Error
}

func (r *repository) execer() gorm.ConnPool {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}
