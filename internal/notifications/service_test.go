package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quicklinkhq/quicklink-backend/pkg/config"
	"github.com/quicklinkhq/quicklink-backend/pkg/db"
	"github.com/quicklinkhq/quicklink-backend/pkg/db/models"
	"github.com/quicklinkhq/quicklink-backend/pkg/enums"
	pkgerrors "github.com/quicklinkhq/quicklink-backend/pkg/errors"
	"github.com/quicklinkhq/quicklink-backend/pkg/pagination"
)

const feedSchema = `
CREATE TABLE notifications (
	id uuid PRIMARY KEY,
	user_id uuid NOT NULL,
	title text NOT NULL,
	message text NOT NULL,
	kind text NOT NULL DEFAULT 'system',
	is_read boolean NOT NULL DEFAULT false,
	read_at datetime,
	created_at datetime
);
`

func newFeedService(t *testing.T) (Service, *Repository) {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{DSN: "file::memory:", Driver: "sqlite"}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().Exec(feedSchema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}

	repo := NewRepository(client.DB())
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func seedNotification(t *testing.T, tx *gorm.DB, userID uuid.UUID, title string, createdAt time.Time) *models.Notification {
	t.Helper()
	row := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Message:   "m",
		Kind:      enums.NotificationKindSystem,
		CreatedAt: createdAt,
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("seed notification: %v", err)
	}
	return row
}

func TestNotifyAppendsToFeed(t *testing.T) {
	svc, _ := newFeedService(t)
	userID := uuid.New()

	if err := svc.Notify(context.Background(), userID, enums.NotificationKindCart, "Cart updated", "Desk Lamp added"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := svc.Notify(context.Background(), userID, "bogus-kind", "Hello", "falls back to system"); err != nil {
		t.Fatalf("Notify fallback: %v", err)
	}

	feed, err := svc.List(context.Background(), userID, pagination.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(feed.Notifications) != 2 || feed.UnreadCount != 2 {
		t.Fatalf("unexpected feed: %+v", feed)
	}
	for _, n := range feed.Notifications {
		if n.Kind != enums.NotificationKindCart && n.Kind != enums.NotificationKindSystem {
			t.Fatalf("unexpected kind: %s", n.Kind)
		}
	}
}

func TestListPagesWithCursor(t *testing.T) {
	svc, repo := newFeedService(t)
	userID := uuid.New()
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedNotification(t, repo.db, userID, "n", base.Add(time.Duration(i)*time.Minute))
	}
	seedNotification(t, repo.db, uuid.New(), "other-user", base)

	first, err := svc.List(context.Background(), userID, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(first.Notifications) != 2 || first.NextCursor == "" {
		t.Fatalf("unexpected first page: %+v", first)
	}

	second, err := svc.List(context.Background(), userID, pagination.Params{Limit: 2, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(second.Notifications) != 2 || second.NextCursor == "" {
		t.Fatalf("unexpected second page: %+v", second)
	}

	third, err := svc.List(context.Background(), userID, pagination.Params{Limit: 2, Cursor: second.NextCursor})
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(third.Notifications) != 1 || third.NextCursor != "" {
		t.Fatalf("unexpected final page: %+v", third)
	}

	seen := map[uuid.UUID]bool{}
	var previous *time.Time
	for _, page := range []*Feed{first, second, third} {
		for _, n := range page.Notifications {
			if seen[n.ID] {
				t.Fatalf("duplicate row %s across pages", n.ID)
			}
			seen[n.ID] = true
			if previous != nil && n.CreatedAt.After(*previous) {
				t.Fatal("feed not ordered newest first")
			}
			at := n.CreatedAt
			previous = &at
		}
	}
}

func TestMarkReadScopesToOwner(t *testing.T) {
	svc, repo := newFeedService(t)
	userID := uuid.New()
	row := seedNotification(t, repo.db, userID, "n", time.Now().UTC())

	updated, err := svc.MarkRead(context.Background(), userID, row.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !updated.IsRead || updated.ReadAt == nil {
		t.Fatalf("unexpected result: %+v", updated)
	}

	feed, err := svc.List(context.Background(), userID, pagination.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if feed.UnreadCount != 0 || !feed.Notifications[0].IsRead {
		t.Fatalf("read flag not persisted: %+v", feed)
	}

	_, err = svc.MarkRead(context.Background(), uuid.New(), row.ID)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for another user, got %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc, repo := newFeedService(t)
	userID := uuid.New()
	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		seedNotification(t, repo.db, userID, "n", now.Add(time.Duration(i)*time.Second))
	}

	if err := svc.MarkAllRead(context.Background(), userID); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	feed, err := svc.List(context.Background(), userID, pagination.Params{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if feed.UnreadCount != 0 {
		t.Fatalf("expected zero unread, got %d", feed.UnreadCount)
	}
	for _, n := range feed.Notifications {
		if !n.IsRead || n.ReadAt == nil {
			t.Fatalf("row not marked read: %+v", n)
		}
	}
}
