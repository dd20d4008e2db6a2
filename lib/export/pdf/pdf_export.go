package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
)

type Provider interface {
	ExportApprovalDetail(view approvalapimodels.ApprovalRecordView) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		fontDir: "static/font/",
	}
}

type impl struct {
	fontDir string
}

const dateFormat = "02.01.2006 15:04"

// ExportApprovalDetail - печатная форма заявки,
// шрифты с кириллицей подключаются из fontDir
func (i impl) ExportApprovalDetail(view approvalapimodels.ApprovalRecordView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ExportApprovalDetail panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", i.fontDir)
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	pdf.MultiCell(0, 8, view.Title, "", "C", false)
	pdf.Ln(4)

	writeField(pdf, "Тип", view.TypeName)
	writeField(pdf, "Инициатор", view.InitiatorName)
	writeField(pdf, "Статус", view.StatusName)
	writeField(pdf, "Дата создания", view.CreatedAt.Format(dateFormat))
	if view.Deadline != nil {
		writeField(pdf, "Срок", view.Deadline.Format(dateFormat))
	}
	if view.CompletedAt != nil {
		writeField(pdf, "Дата завершения", view.CompletedAt.Format(dateFormat))
	}
	if view.Content != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, view.Content, "", "L", false)
	}

	if len(view.Nodes) != 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Ход согласования", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, node := range view.Nodes {
			line := fmt.Sprintf("%v. %v: %v", node.NodeOrder, node.NodeName, node.Status.ToHuman())
			if node.ApproverName != "" {
				line = fmt.Sprintf("%v (%v)", line, node.ApproverName)
			}
			if node.DecidedAt != nil {
				line = fmt.Sprintf("%v, %v", line, node.DecidedAt.Format(dateFormat))
			}
			pdf.MultiCell(0, 6, line, "", "L", false)
			if node.Comment != "" {
				pdf.MultiCell(0, 6, "    "+node.Comment, "", "L", false)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, name, value string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(45, 6, name+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, value, "", "L", false)
}
