package approvalapimodels

import (
	"time"

	"github.com/pkg/errors"

	"github.com/rain-knows/approval-system/models"
	apimodels "github.com/rain-knows/approval-system/models/api"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type ApprovalCreateData struct {
	Title         string     `json:"title"`          // тема согласования
	TypeCode      string     `json:"type_code"`      // код типа согласования
	Content       string     `json:"content"`        // содержание заявки
	Priority      *int       `json:"priority"`       // приоритет (0 если не указан)
	Deadline      *time.Time `json:"deadline"`       // срок согласования
	AttachmentIDs []string   `json:"attachment_ids"` // ид ранее загруженных вложений
}

func (r ApprovalCreateData) Validate() error {
	if r.Title == "" {
		return errors.New("не указана тема согласования")
	}
	if r.TypeCode == "" {
		return errors.New("не указан тип согласования")
	}
	if r.Priority != nil && *r.Priority < 0 {
		return errors.New("приоритет не может быть отрицательным")
	}
	return nil
}

type ApprovalFilter struct {
	apimodels.Pagination
	Status *models.RecordStatus `json:"status"` // фильтр по статусу записи
}

func (r ApprovalFilter) Validate() error {
	return r.Pagination.Validate()
}

type DecisionData struct {
	Comment string `json:"comment"` // комментарий согласующего
}

func (r DecisionData) Validate() error {
	return nil
}

type ApprovalRecordView struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	TypeCode         string              `json:"type_code"`
	TypeName         string              `json:"type_name"`
	TypeIcon         string              `json:"type_icon,omitempty"`
	TypeColor        string              `json:"type_color,omitempty"`
	Content          string              `json:"content,omitempty"`
	InitiatorID      string              `json:"initiator_id"`
	InitiatorName    string              `json:"initiator_name,omitempty"`
	Priority         int                 `json:"priority"`
	Deadline         *time.Time          `json:"deadline,omitempty"`
	Status           models.RecordStatus `json:"status"`
	StatusName       string              `json:"status_name"`
	CurrentNodeOrder int                 `json:"current_node_order"`
	WorkflowID       string              `json:"workflow_id"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
	Nodes            []ApprovalNodeView  `json:"nodes,omitempty"`
	Attachments      []AttachmentView    `json:"attachments,omitempty"`
}

type ApprovalNodeView struct {
	ID           string            `json:"id"`
	NodeName     string            `json:"node_name"`
	ApproverID   string            `json:"approver_id"`
	ApproverName string            `json:"approver_name,omitempty"`
	NodeOrder    int               `json:"node_order"`
	Status       models.NodeStatus `json:"status"`
	Comment      string            `json:"comment,omitempty"`
	DecidedAt    *time.Time        `json:"decided_at,omitempty"`
}

type AttachmentView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func ApprovalRecordConvert(rec dbmodels.ApprovalRecord, initiator *dbmodels.User, approvalType *dbmodels.ApprovalType) ApprovalRecordView {
	view := ApprovalRecordView{
		ID:               rec.ID,
		Title:            rec.Title,
		TypeCode:         rec.TypeCode,
		TypeName:         rec.TypeCode,
		Content:          rec.Content,
		InitiatorID:      rec.InitiatorID,
		Priority:         rec.Priority,
		Deadline:         rec.Deadline,
		Status:           rec.Status,
		StatusName:       rec.Status.ToHuman(),
		CurrentNodeOrder: rec.CurrentNodeOrder,
		WorkflowID:       rec.WorkflowID,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
		CompletedAt:      rec.CompletedAt,
	}
	if approvalType != nil {
		view.TypeName = approvalType.Name
		view.TypeIcon = approvalType.Icon
		view.TypeColor = approvalType.Color
	}
	if initiator != nil {
		view.InitiatorName = initiator.GetDisplayName()
	}
	return view
}

func ApprovalNodeConvert(rec dbmodels.ApprovalNode) ApprovalNodeView {
	view := ApprovalNodeView{
		ID:         rec.ID,
		NodeName:   rec.NodeName,
		ApproverID: rec.ApproverID,
		NodeOrder:  rec.NodeOrder,
		Status:     rec.Status,
		Comment:    rec.Comment,
		DecidedAt:  rec.DecidedAt,
	}
	if rec.Approver != nil {
		view.ApproverName = rec.Approver.GetDisplayName()
	}
	return view
}

func AttachmentConvert(rec dbmodels.Attachment) AttachmentView {
	return AttachmentView{
		ID:          rec.ID,
		Name:        rec.Name,
		ContentType: rec.ContentType,
		Size:        rec.Size,
	}
}
