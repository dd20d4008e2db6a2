package pdfexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
)

// При недоступных шрифтах экспорт возвращает ошибку, а не панику
func TestExportDetailWithoutFonts(t *testing.T) {
	handler := impl{fontDir: t.TempDir()}

	_, err := handler.ExportApprovalDetail(approvalapimodels.ApprovalRecordView{
		Title:         "Отпуск",
		TypeName:      "Отпуск",
		InitiatorName: "Иванов",
		StatusName:    "На согласовании",
		CreatedAt:     time.Now(),
	})
	require.Error(t, err)
}
