package dbmodels

import (
	"time"

	"github.com/rain-knows/approval-system/models"
)

// Запись согласования, владеет своим набором узлов
type ApprovalRecord struct {
	BaseModel
	Title            string `gorm:"type:varchar(255)"`
	TypeCode         string `gorm:"type:varchar(50);index"`
	Content          string `gorm:"type:text"`
	InitiatorID      string `gorm:"type:varchar(36);index"`
	Initiator        *User  `gorm:"foreignKey:InitiatorID"`
	Priority         int    `gorm:"default:0"`
	Deadline         *time.Time
	Status           models.RecordStatus `gorm:"default:1"`
	CurrentNodeOrder int                 `gorm:"default:1"`
	WorkflowID       string              `gorm:"type:varchar(36)"`
	CompletedAt      *time.Time
	Nodes            []ApprovalNode `gorm:"foreignKey:ApprovalID;constraint:OnDelete:CASCADE"`
}

// Узел согласования, ровно один на пару (approval_id, node_order)
type ApprovalNode struct {
	BaseModel
	ApprovalID string            `gorm:"type:varchar(36);uniqueIndex:idx_approval_node_order"`
	NodeName   string            `gorm:"type:varchar(100)"`
	ApproverID string            `gorm:"type:varchar(36);index"`
	Approver   *User             `gorm:"foreignKey:ApproverID"`
	NodeOrder  int               `gorm:"uniqueIndex:idx_approval_node_order"`
	Status     models.NodeStatus `gorm:"default:0"`
	Comment    string            `gorm:"type:text"`
	DecidedAt  *time.Time
}
