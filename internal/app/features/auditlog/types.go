// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/dalemusser/dailyhub/internal/app/store/audit"
)

// listItem is one audit event as shown to its own user.
type listItem struct {
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"event_type"`
	IP            string            `json:"ip"`
	UserAgent     string            `json:"user_agent,omitempty"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

func toListItem(e audit.Event) listItem {
	return listItem{
		Timestamp:     e.Timestamp,
		Category:      e.Category,
		EventType:     e.EventType,
		IP:            e.IP,
		UserAgent:     e.UserAgent,
		Success:       e.Success,
		FailureReason: e.FailureReason,
		Details:       e.Details,
	}
}

type listResponse struct {
	Items      []listItem `json:"items"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	Total      int64      `json:"total"`
}

// knownCategory reports whether c is a category filter value.
func knownCategory(c string) bool {
	switch c {
	case "", audit.CategoryAuth, audit.CategorySecurity:
		return true
	}
	return false
}
