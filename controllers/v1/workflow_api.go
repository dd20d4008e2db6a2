package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rain-knows/approval-system/controllers"
	workflowhandler "github.com/rain-knows/approval-system/lib/workflow"
	"github.com/rain-knows/approval-system/middleware"
	apimodels "github.com/rain-knows/approval-system/models/api"
	approvalapimodels "github.com/rain-knows/approval-system/models/api/approval"
)

type workflowApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowApiRouters(app *fiber.App) {
	controller := workflowApiController{}
	app.Route("workflow", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Route(":type_code", func(codeRoute fiber.Router) {
			codeRoute.Get("", controller.get)
			codeRoute.Put("", middleware.AdminRequired(), controller.save)
			codeRoute.Delete("", middleware.AdminRequired(), controller.delete)
		})
	})
}

// @Summary Маршрут типа
// @Tags Маршруты согласования
// @Description Маршрут согласования для типа заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type_code          		path    string  				    	true         "код типа"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.WorkflowView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{type_code} [get]
func (c *workflowApiController) get(ctx *fiber.Ctx) error {
	typeCode, err := c.GetIDByKey(ctx, "type_code")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, hMsg, err := workflowhandler.Instance.GetByTypeCode(typeCode)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения маршрута согласования")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Сохранение маршрута
// @Tags Маршруты согласования
// @Description Сохранение маршрута согласования для типа заявки, этапы заменяются целиком
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.WorkflowSaveData	true	"request body"
// @Param   type_code          		path    string  				    	true         "код типа"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{type_code} [put]
func (c *workflowApiController) save(ctx *fiber.Ctx) error {
	typeCode, err := c.GetIDByKey(ctx, "type_code")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.WorkflowSaveData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := workflowhandler.Instance.SaveTemplate(typeCode, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения маршрута согласования")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление маршрута
// @Tags Маршруты согласования
// @Description Удаление маршрута согласования типа заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   type_code          		path    string  				    	true         "код типа"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{type_code} [delete]
func (c *workflowApiController) delete(ctx *fiber.Ctx) error {
	typeCode, err := c.GetIDByKey(ctx, "type_code")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := workflowhandler.Instance.DeleteByTypeCode(typeCode)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления маршрута согласования")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
