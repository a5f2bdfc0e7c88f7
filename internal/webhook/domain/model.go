package domain

import "time"

const (
	EventOrderPaid          = "order.paid"
	EventUserCreated        = "user.created"
	EventUserInactive7Days  = "user.inactive.7days"
	EventUserInactive15Days = "user.inactive.15days"
	EventUserInactive30Days = "user.inactive.30days"
)

// KnownEventTypes lists every event type a subscription row is provisioned for.
func KnownEventTypes() []string {
	return []string{
		EventOrderPaid,
		EventUserCreated,
		EventUserInactive7Days,
		EventUserInactive15Days,
		EventUserInactive30Days,
	}
}

func IsKnownEventType(eventType string) bool {
	for _, known := range KnownEventTypes() {
		if known == eventType {
			return true
		}
	}
	return false
}

// Subscription holds the outbound delivery configuration for one event type,
// plus the most recent delivery outcome. One row exists per known event type;
// rows are provisioned at startup and never deleted.
type Subscription struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	EventType        string     `json:"event_type" gorm:"type:text;not null;uniqueIndex"`
	URL              *string    `json:"webhook_url,omitempty" gorm:"column:webhook_url;type:text"`
	Active           bool       `json:"active" gorm:"not null;default:false"`
	SecretToken      *string    `json:"-" gorm:"type:text"`
	LastTriggeredAt  *time.Time `json:"last_triggered_at,omitempty"`
	LastStatusCode   *int       `json:"last_status_code,omitempty"`
	LastErrorMessage *string    `json:"last_error_message,omitempty" gorm:"type:text"`
	CreatedAt        time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Subscription) TableName() string { return "webhook_subscriptions" }

// DispatchRecord permanently marks that an inactivity notification was
// attempted for a user and threshold. The unique (user_id, event_type) index
// is the dedup mechanism; rows are never updated or deleted.
type DispatchRecord struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:ux_dispatch_records_user_event,priority:1"`
	EventType string    `json:"event_type" gorm:"type:text;not null;uniqueIndex:ux_dispatch_records_user_event,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DispatchRecord) TableName() string { return "webhook_dispatch_records" }
