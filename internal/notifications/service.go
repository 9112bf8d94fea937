package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/pagination"
)

// NotificationDTO is one entry in the user's feed.
type NotificationDTO struct {
	ID        uuid.UUID              `json:"id"`
	UserID    uuid.UUID              `json:"user_id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Kind      enums.NotificationKind `json:"kind"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Feed is one cursor page of notifications.
type Feed struct {
	Notifications []NotificationDTO `json:"notifications"`
	NextCursor    string            `json:"next_cursor,omitempty"`
	UnreadCount   int64             `json:"unread_count"`
}

// Service writes and reads the persisted notification feed. Notify
// satisfies the notifier interfaces of the cart, ride, and order flows.
type Service interface {
	Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationKind, title, message string) error
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Feed, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*NotificationDTO, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type feedRepository interface {
	Create(ctx context.Context, row *models.Notification) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Notification, string, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	repo feedRepository
	now  func() time.Time
}

// NewService constructs the notification service.
func NewService(repo feedRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notification repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, kind enums.NotificationKind, title, message string) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !kind.IsValid() {
		kind = enums.NotificationKindSystem
	}
	if strings.TrimSpace(title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}

	_, err := s.repo.Create(ctx, &models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Kind:    kind,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*Feed, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view notifications")
	}

	rows, nextCursor, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	unread, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread")
	}

	dtos := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, fromModel(&rows[i]))
	}
	return &Feed{
		Notifications: dtos,
		NextCursor:    nextCursor,
		UnreadCount:   unread,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id uuid.UUID) (*NotificationDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to update notifications")
	}

	at := s.now().UTC()
	if err := s.repo.MarkRead(ctx, userID, id, at); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	return &NotificationDTO{ID: id, UserID: userID, IsRead: true, ReadAt: &at}, nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to update notifications")
	}
	if err := s.repo.MarkAllRead(ctx, userID, s.now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark all notifications read")
	}
	return nil
}

func fromModel(n *models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Kind:      n.Kind,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
