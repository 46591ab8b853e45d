package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationKindOrderPlaced NotificationKind = "order_placed"
	NotificationKindOrderStatus NotificationKind = "order_status"
	NotificationKindLowStock    NotificationKind = "low_stock"
	NotificationKindOutOfStock  NotificationKind = "out_of_stock"
	NotificationKindNewUser     NotificationKind = "new_user"
)

type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)

type Notification struct {
	ID        uuid.UUID          `json:"id"`
	Kind      NotificationKind   `json:"kind"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	Status    NotificationStatus `json:"status"`
	UserID    *uuid.UUID         `json:"user_id,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

type EmailNotificationRequest struct {
	To          string   `json:"to" validate:"required,email"`
	Subject     string   `json:"subject" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	HTMLContent string   `json:"html_content,omitempty"`
	CC          []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
	BCC         []string `json:"bcc,omitempty" validate:"omitempty,dive,email"`
}
