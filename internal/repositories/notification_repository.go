package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mdsweden/storefront-backend/internal/models"
	"github.com/mdsweden/storefront-backend/internal/utils"
	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context, status models.NotificationStatus, page, size int) ([]*models.Notification, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (id, kind, title, body, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query, notification.ID, notification.Kind, notification.Title, notification.Body, notification.Status, notification.UserID).Scan(&notification.CreatedAt)
}

func (r *notificationRepository) ListNotifications(ctx context.Context, status models.NotificationStatus, page, size int) ([]*models.Notification, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM notifications WHERE status = $1`, status).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * size

	query := `
		SELECT id, kind, title, body, status, user_id, created_at
		FROM notifications
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, status, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	defer rows.Close()

	var notifications []*models.Notification

	for rows.Next() {
		notification := &models.Notification{}

		err := rows.Scan(&notification.ID, &notification.Kind, &notification.Title, &notification.Body, &notification.Status, &notification.UserID, &notification.CreatedAt)
		if err != nil {
			return nil, 0, err
		}

		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE notifications SET status = $1 WHERE id = $2`, models.NotificationStatusRead, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
