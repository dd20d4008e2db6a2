package dbmodels

type Notification struct {
	BaseModel
	UserID     string `gorm:"type:varchar(36);index"`
	Title      string `gorm:"type:varchar(255)"`
	Content    string `gorm:"type:text"`
	ApprovalID string `gorm:"type:varchar(36)"`
	IsRead     bool   `gorm:"default:false"`
}
