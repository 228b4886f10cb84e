package models

import (
	"fmt"
	"strings"
	"time"
)

// NotificationType is the severity of an inbox entry.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// ParseNotificationType validates s; an empty string means info.
func ParseNotificationType(s string) (NotificationType, error) {
	switch t := NotificationType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return NotificationInfo, nil
	case NotificationInfo, NotificationWarning, NotificationSuccess, NotificationError:
		return t, nil
	default:
		return "", fmt.Errorf("invalid notification type %q", s)
	}
}

// Icon is the glyph shown next to a notification of this type.
func (t NotificationType) Icon() string {
	switch t {
	case NotificationSuccess:
		return "✅"
	case NotificationWarning:
		return "⚠️"
	case NotificationError:
		return "❌"
	default:
		return "ℹ️"
	}
}

type Notification struct {
	ID        string           `json:"id"`
	AccountID int              `json:"account_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	Timestamp time.Time        `json:"timestamp"`
}
