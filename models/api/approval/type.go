package approvalapimodels

import (
	"github.com/pkg/errors"

	"github.com/rain-knows/approval-system/models"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type ApprovalTypeData struct {
	Code  string `json:"code"`  // уникальный код типа
	Name  string `json:"name"`  // название
	Icon  string `json:"icon"`  // иконка для фронта
	Color string `json:"color"` // цвет для фронта
	Sort  int    `json:"sort"`  // порядок отображения
}

func (r ApprovalTypeData) Validate() error {
	if r.Code == "" {
		return errors.New("не указан код типа согласования")
	}
	if r.Name == "" {
		return errors.New("не указано название типа согласования")
	}
	return nil
}

type ApprovalTypeView struct {
	ID     string            `json:"id"`
	Code   string            `json:"code"`
	Name   string            `json:"name"`
	Icon   string            `json:"icon,omitempty"`
	Color  string            `json:"color,omitempty"`
	Status models.TypeStatus `json:"status"`
	Sort   int               `json:"sort"`
}

func ApprovalTypeConvert(rec dbmodels.ApprovalType) ApprovalTypeView {
	return ApprovalTypeView{
		ID:     rec.ID,
		Code:   rec.Code,
		Name:   rec.Name,
		Icon:   rec.Icon,
		Color:  rec.Color,
		Status: rec.Status,
		Sort:   rec.Sort,
	}
}
