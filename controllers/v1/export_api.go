package apiv1

import (
	"fmt"
	"time"

	"bim-collab-backend/controllers"
	"bim-collab-backend/db"
	applicationstore "bim-collab-backend/lib/application/store"
	xlsexport "bim-collab-backend/lib/export/xls"
	"bim-collab-backend/middleware"
	apimodels "bim-collab-backend/models/api"
	dbmodels "bim-collab-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type exportApiController struct {
	controllers.BaseAPIController
	applicationStore applicationstore.Provider
}

func InitExportApiRouters(app fiber.Router) {
	controller := exportApiController{
		applicationStore: applicationstore.NewInstance(db.DB),
	}
	app.Route("export", func(router fiber.Router) {
		router.Use(middleware.AdminRoleRequired())
		router.Put("applications", controller.applicationsExport)
	})
}

// @Summary Applications. Export to Excel
// @Tags Export
// @Description Export filtered applications to Excel
// @Param   Authorization		header	string	true	"Authorization token"
// @Param	body body	dbmodels.ApplicationFilter	true	"request filter body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/export/applications [put]
func (c *exportApiController) applicationsExport(ctx *fiber.Ctx) error {
	var payload dbmodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.applicationStore.List(payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	data, err := xlsexport.Instance.ExportApplicationList(list)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	fileName := fmt.Sprintf("candidature-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
