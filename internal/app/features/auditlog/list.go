// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/dailyhub/internal/app/store/audit"
	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/dailyhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	pageSize = 50
	maxPage  = 1_000_000
)

// ServeList handles GET /api/activity: the caller's own authentication
// history, newest first.
//
// Query parameters (all optional): category, event_type, start_date and
// end_date (YYYY-MM-DD, inclusive), failed (true limits the list to
// unsuccessful sign-ins), page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		apierr.Write(w, apierr.ErrInvalidCredentials)
		return
	}

	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	eventType := strings.TrimSpace(q.Get("event_type"))

	fields := map[string]string{}
	if !knownCategory(category) {
		fields["category"] = "must be one of: auth security"
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 || p > maxPage {
			fields["page"] = "must be an integer between 1 and 1000000"
		} else {
			page = p
		}
	}

	filter := audit.QueryFilter{
		UserID:    u.UserID,
		Category:  category,
		EventType: eventType,
		Limit:     pageSize,
		Offset:    int64(page-1) * pageSize,
	}

	if raw := strings.TrimSpace(q.Get("failed")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			fields["failed"] = "must be true or false"
		} else {
			filter.FailedLogins = b
		}
	}

	if raw := strings.TrimSpace(q.Get("start_date")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fields["start_date"] = "must be YYYY-MM-DD"
		} else {
			filter.StartTime = &t
		}
	}
	if raw := strings.TrimSpace(q.Get("end_date")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fields["end_date"] = "must be YYYY-MM-DD"
		} else {
			endOfDay := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndTime = &endOfDay
		}
	}
	if len(fields) > 0 {
		apierr.Write(w, apierr.Validation(fields))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "audit log list")
	defer cancel()

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.Log.Error("failed to query audit events", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}
	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		h.Log.Error("failed to count audit events", zap.Error(err))
		apierr.Write(w, apierr.ErrInternal)
		return
	}

	items := make([]listItem, 0, len(events))
	for _, e := range events {
		items = append(items, toListItem(e))
	}

	totalPages := int((total + pageSize - 1) / pageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	apierr.JSON(w, http.StatusOK, listResponse{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	})
}
