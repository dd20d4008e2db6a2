package filesapimodels

import (
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type FileView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	ApprovalID  string `json:"approval_id,omitempty"`
}

func FileConvert(rec dbmodels.Attachment) FileView {
	return FileView{
		ID:          rec.ID,
		Name:        rec.Name,
		ContentType: rec.ContentType,
		Size:        rec.Size,
		ApprovalID:  rec.ApprovalID,
	}
}
