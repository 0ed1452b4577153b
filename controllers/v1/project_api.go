package apiv1

import (
	"bim-collab-backend/controllers"
	"bim-collab-backend/db"
	companystore "bim-collab-backend/lib/profile/company-store"
	projectstore "bim-collab-backend/lib/project/store"
	"bim-collab-backend/middleware"
	apimodels "bim-collab-backend/models/api"
	projectapimodels "bim-collab-backend/models/api/project"

	"github.com/gofiber/fiber/v2"
)

type projectApiController struct {
	controllers.BaseAPIController
	projectStore projectstore.Provider
	companyStore companystore.Provider
}

func InitProjectApiRouters(app fiber.Router) {
	controller := projectApiController{
		projectStore: projectstore.NewInstance(db.DB),
		companyStore: companystore.NewInstance(db.DB),
	}
	app.Route("projects", func(router fiber.Router) {
		router.Get("", middleware.CompanyRoleRequired(), controller.listOwn)
		router.Get(":id", controller.get)
	})
}

// @Summary Own projects
// @Tags Projects
// @Description List the projects of the current company
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]projectapimodels.ProjectView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects [get]
func (c *projectApiController) listOwn(ctx *fiber.Ctx) error {
	company, err := c.companyStore.GetByUserID(middleware.GetUserID(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if company == nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("company profile not found for current user"))
	}
	list, err := c.projectStore.ListByCompany(company.ID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	result := make([]projectapimodels.ProjectView, 0, len(list))
	for _, rec := range list {
		result = append(result, projectapimodels.Convert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Get project
// @Tags Projects
// @Description Get project by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=projectapimodels.ProjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/projects/{id} [get]
func (c *projectApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := c.projectStore.GetByID(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if rec == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("project not found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(projectapimodels.Convert(*rec)))
}
