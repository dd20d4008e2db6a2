package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rain-knows/approval-system/controllers"
	approvaltypehandler "github.com/rain-knows/approval-system/lib/approval-type"
	"github.com/rain-knows/approval-system/middleware"
	apimodels "github.com/rain-knows/approval-system/models/api"
	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
)

type approvalTypeApiController struct {
	controllers.BaseAPIController
}

func InitApprovalTypeApiRouters(app *fiber.App) {
	controller := approvalTypeApiController{}
	app.Route("approval_type", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.listEnabled)
		router.Get("all", middleware.AdminRequired(), controller.list)
		router.Post("", middleware.AdminRequired(), controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Use(middleware.AdminRequired())
			idRoute.Put("", controller.update)
			idRoute.Put("enable", controller.enable)
			idRoute.Put("disable", controller.disable)
		})
	})
}

// @Summary Доступные типы
// @Tags Типы согласования
// @Description Список включенных типов согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalTypeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_type [get]
func (c *approvalTypeApiController) listEnabled(ctx *fiber.Ctx) error {
	list, err := approvaltypehandler.Instance.ListEnabled()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения типов согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Все типы
// @Tags Типы согласования
// @Description Полный список типов согласования, включая отключенные
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.ApprovalTypeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_type/all [get]
func (c *approvalTypeApiController) list(ctx *fiber.Ctx) error {
	list, err := approvaltypehandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения типов согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание
// @Tags Типы согласования
// @Description Создание типа согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.ApprovalTypeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_type [post]
func (c *approvalTypeApiController) create(ctx *fiber.Ctx) error {
	var payload approvalapimodels.ApprovalTypeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, hMsg, err := approvaltypehandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания типа согласования")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Типы согласования
// @Description Обновление типа согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.ApprovalTypeData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_type/{id} [put]
func (c *approvalTypeApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.ApprovalTypeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := approvaltypehandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления типа согласования")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Включить
// @Tags Типы согласования
// @Description Включить тип согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_type/{id}/enable [put]
func (c *approvalTypeApiController) enable(ctx *fiber.Ctx) error {
	return c.setStatus(ctx, true)
}

// @Summary Отключить
// @Tags Типы согласования
// @Description Отключить тип согласования, новые заявки по нему создавать нельзя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approval_type/{id}/disable [put]
func (c *approvalTypeApiController) disable(ctx *fiber.Ctx) error {
	return c.setStatus(ctx, false)
}

func (c *approvalTypeApiController) setStatus(ctx *fiber.Ctx, enabled bool) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := approvaltypehandler.Instance.SetStatus(id, enabled)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения статуса типа согласования")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
