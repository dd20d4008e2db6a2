package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
)

type Provider interface {
	ExportApprovalList(list []approvalapimodels.ApprovalRecordView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var approvalHeaders = []string{"Тема", "Тип", "Инициатор", "Приоритет", "Статус", "Текущий этап", "Дата создания", "Срок", "Дата завершения"}

const dateFormat = "02.01.2006 15:04"

func (i impl) ExportApprovalList(list []approvalapimodels.ApprovalRecordView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, approvalHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeApprovalData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Согласования")
	return f.WriteToBuffer()
}

func writeApprovalData(f *excelize.File, sheet string, list []approvalapimodels.ApprovalRecordView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(approvalHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Тема"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Title); err != nil {
			return row, err
		}

		// "Тип"
		col++
		if err := writeColumn(f, sheet, col, row, item.TypeName); err != nil {
			return row, err
		}

		// "Инициатор"
		col++
		if err := writeColumn(f, sheet, col, row, item.InitiatorName); err != nil {
			return row, err
		}

		// "Приоритет"
		col++
		if err := writeColumn(f, sheet, col, row, item.Priority); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.StatusName); err != nil {
			return row, err
		}

		// "Текущий этап"
		col++
		if err := writeColumn(f, sheet, col, row, item.CurrentNodeOrder); err != nil {
			return row, err
		}

		// "Дата создания"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format(dateFormat)); err != nil {
			return row, err
		}

		// "Срок"
		col++
		deadline := ""
		if item.Deadline != nil {
			deadline = item.Deadline.Format(dateFormat)
		}
		if err := writeColumn(f, sheet, col, row, deadline); err != nil {
			return row, err
		}

		// "Дата завершения"
		col++
		completedAt := ""
		if item.CompletedAt != nil {
			completedAt = item.CompletedAt.Format(dateFormat)
		}
		if err := writeColumn(f, sheet, col, row, completedAt); err != nil {
			return row, err
		}
	}
	return row, nil
}
