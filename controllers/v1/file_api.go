package apiv1

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/rain-knows/approval-system/controllers"
	filestorage "github.com/rain-knows/approval-system/lib/file-storage"
	"github.com/rain-knows/approval-system/middleware"
	apimodels "github.com/rain-knows/approval-system/models/api"
)

type fileApiController struct {
	controllers.BaseAPIController
}

func InitFileApiRouters(app *fiber.App) {
	controller := fileApiController{}
	app.Route("file", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.upload)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.download)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Загрузка файла
// @Tags Вложения
// @Description Загрузка вложения, привязка к заявке выполняется при ее создании
// @Accept  multipart/form-data
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file	formData	file	true	"file"
// @Success 200 {object} apimodels.Response{data=filesapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/file [post]
func (c *fileApiController) upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка чтения файла")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка чтения файла")
	}
	userID := middleware.GetUserID(ctx)
	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	resp, err := filestorage.Instance.Upload(ctx.Context(), userID, fileHeader.Filename, contentType, data)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки файла")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Скачивание файла
// @Tags Вложения
// @Description Скачивание вложения по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/file/{id} [get]
func (c *fileApiController) download(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, data, hMsg, err := filestorage.Instance.Download(ctx.Context(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка скачивания файла")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	ctx.Set(fiber.HeaderContentType, view.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", view.Name))
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Удаление файла
// @Tags Вложения
// @Description Удаление свободного вложения, привязанное к заявке удалить нельзя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/file/{id} [delete]
func (c *fileApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	hMsg, err := filestorage.Instance.Delete(ctx.Context(), id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления файла")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
