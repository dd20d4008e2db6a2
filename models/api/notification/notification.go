package notificationapimodels

import (
	"time"

	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type NotificationView struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	ApprovalID string    `json:"approval_id,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:         rec.ID,
		Title:      rec.Title,
		Content:    rec.Content,
		ApprovalID: rec.ApprovalID,
		IsRead:     rec.IsRead,
		CreatedAt:  rec.CreatedAt,
	}
}
