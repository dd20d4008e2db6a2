package dbmodels

type Attachment struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	ObjectKey   string `gorm:"type:varchar(100);uniqueIndex"`
	ContentType string `gorm:"type:varchar(100)"`
	Size        int64
	UploadedBy  string `gorm:"type:varchar(36)"`
	// заполняется при создании записи согласования, до этого файл "висит" без привязки
	ApprovalID string `gorm:"type:varchar(36);index"`
}
