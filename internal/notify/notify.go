// Package notify manages the notifications collection: short-lived,
// user-addressed messages the surrounding UI renders and marks read.
package notify

import (
	"sort"
	"time"

	"github.com/badrsabra/clinicpro/internal/model"
	"github.com/badrsabra/clinicpro/internal/store"
)

// Expiry is how long a notification stays relevant.
const Expiry = 7 * 24 * time.Hour

// Service creates and reads notification records.
type Service struct {
	db *store.DB
}

// NewService creates a notification service over the store.
func NewService(db *store.DB) *Service {
	return &Service{db: db}
}

// Create writes a notification for a user. Type is one of "info",
// "success", "warning", "error".
func (s *Service) Create(userID, title, message, typ string) store.Result {
	expires := s.db.Clock().Now().Add(Expiry).UTC().Format(time.RFC3339)
	return s.db.Create(store.Notifications, store.Document{
		"userId":    userID,
		"title":     title,
		"message":   message,
		"type":      typ,
		"isRead":    false,
		"expiresAt": expires,
	})
}

// ForUser returns a user's notifications, newest first by createdAt.
// With unreadOnly, read notifications are filtered out.
func (s *Service) ForUser(userID string, unreadOnly bool) ([]model.Notification, error) {
	filters := store.Filters{"userId": userID}
	if unreadOnly {
		filters["isRead"] = false
	}
	docs := s.db.GetAll(store.Notifications, filters)

	items, err := store.DecodeAll[model.Notification](docs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items, nil
}

// MarkRead flags a notification as read and stamps readAt.
func (s *Service) MarkRead(id string) store.Result {
	return s.db.Update(store.Notifications, id, store.Document{
		"isRead": true,
		"readAt": s.db.Now(),
	})
}
