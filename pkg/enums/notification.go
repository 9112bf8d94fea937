package enums

// NotificationKind labels entries in the per-user notification feed.
type NotificationKind string

const (
	NotificationKindCart   NotificationKind = "cart"
	NotificationKindOrder  NotificationKind = "order"
	NotificationKindRide   NotificationKind = "ride"
	NotificationKindSystem NotificationKind = "system"
)

func (n NotificationKind) IsValid() bool {
	switch n {
	case NotificationKindCart, NotificationKindOrder, NotificationKindRide, NotificationKindSystem:
		return true
	}
	return false
}
