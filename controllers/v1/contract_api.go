package apiv1

import (
	"fmt"
	"strings"

	"bim-collab-backend/controllers"
	"bim-collab-backend/lib/contract"
	filestorage "bim-collab-backend/lib/file-storage"
	"bim-collab-backend/middleware"
	"bim-collab-backend/models"
	apimodels "bim-collab-backend/models/api"
	contractapimodels "bim-collab-backend/models/api/contract"

	"github.com/gofiber/fiber/v2"
)

type contractApiController struct {
	controllers.BaseAPIController
}

// Contract management is an admin-only surface, the parties only ever see
// the outcome through notifications and the final PDF.
func InitContractApiRouters(app fiber.Router) {
	controller := contractApiController{}
	app.Route("contracts", func(router fiber.Router) {
		router.Use(middleware.AdminRoleRequired())
		router.Post("from_application/:id", controller.createDraft)
		router.Get("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("generate", controller.generate)
			idRoute.Put("text", controller.updateText)
			idRoute.Put("send_to_review", controller.sendToReview)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("archive", controller.archive)
			idRoute.Get("pdf", controller.downloadPDF)
			idRoute.Get("pdf/archive", controller.listArchivedPDFs)
			idRoute.Get("pdf/archive/object", controller.downloadArchivedPDF)
		})
	})
}

// @Summary Create draft
// @Tags Contracts
// @Description Create a contract draft from an accepted application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"application ID"
// @Param	body body	 contractapimodels.DraftOverrides	true	"payment overrides"
// @Success 200 {object} apimodels.Response{data=contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/from_application/{id} [post]
func (c *contractApiController) createDraft(ctx *fiber.Ctx) error {
	applicationID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload contractapimodels.DraftOverrides
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := contract.Instance.CreateDraft(applicationID, payload)
	if err != nil {
		return ctx.Status(errorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Contract list
// @Tags Contracts
// @Description List contracts, optionally filtered by status
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status      		query   string  	false	"contract status"
// @Success 200 {object} apimodels.Response{data=[]contractapimodels.ContractView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/list [get]
func (c *contractApiController) list(ctx *fiber.Ctx) error {
	status := models.ContractStatus(ctx.Query("status"))
	list, err := contract.Instance.List(status)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get contract
// @Tags Contracts
// @Description Get contract by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id} [get]
func (c *contractApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := contract.Instance.GetByID(id)
	if err != nil {
		return ctx.Status(errorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Generate text
// @Tags Contracts
// @Description Generate the contract text from the draft data
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id}/generate [put]
func (c *contractApiController) generate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := contract.Instance.Generate(id)
	if err != nil {
		return ctx.Status(errorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update text
// @Tags Contracts
// @Description Manually edit the generated contract text
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 contractapimodels.UpdateTextData	true	"new text"
// @Success 200 {object} apimodels.Response{data=contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id}/text [put]
func (c *contractApiController) updateText(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload contractapimodels.UpdateTextData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := contract.Instance.UpdateText(id, payload)
	if err != nil {
		return ctx.Status(errorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Send to review
// @Tags Contracts
// @Description Validate the content and put the contract under review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 contractapimodels.SendToReviewData	true	"notification targets"
// @Success 200 {object} apimodels.Response{data=contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id}/send_to_review [put]
func (c *contractApiController) sendToReview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload contractapimodels.SendToReviewData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := contract.Instance.SendToReview(id, payload)
	return mutationResponse(ctx, view, err)
}

// @Summary Approve contract
// @Tags Contracts
// @Description Approve a contract under review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 contractapimodels.ReviewDecisionData	true	"review notes"
// @Success 200 {object} apimodels.Response{data=contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id}/approve [put]
func (c *contractApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload contractapimodels.ReviewDecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := contract.Instance.Approve(id, payload)
	return mutationResponse(ctx, view, err)
}

// @Summary Reject contract
// @Tags Contracts
// @Description Reject a contract under review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 contractapimodels.ReviewDecisionData	true	"review notes"
// @Success 200 {object} apimodels.Response{data=contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id}/reject [put]
func (c *contractApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload contractapimodels.ReviewDecisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := contract.Instance.Reject(id, payload)
	return mutationResponse(ctx, view, err)
}

// @Summary Archive contract
// @Tags Contracts
// @Description Archive a reviewed contract
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=contractapimodels.ContractView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id}/archive [put]
func (c *contractApiController) archive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := contract.Instance.Archive(id)
	if err != nil {
		return ctx.Status(errorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Download PDF
// @Tags Contracts
// @Description Render an approved contract as PDF
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id}/pdf [get]
func (c *contractApiController) downloadPDF(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileName, body, err := contract.Instance.RenderPDF(ctx.Context(), id)
	if err != nil {
		return ctx.Status(errorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(body)
}

// @Summary Archived renders
// @Tags Contracts
// @Description List the archived PDF renders of a contract
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id}/pdf/archive [get]
func (c *contractApiController) listArchivedPDFs(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	names, err := filestorage.Instance.ListContractPDFs(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(names))
}

// @Summary Download archived render
// @Tags Contracts
// @Description Download one archived PDF render by object name
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param   object      		query   string  	true	"object name"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/contracts/{id}/pdf/archive/object [get]
func (c *contractApiController) downloadArchivedPDF(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	objectName := ctx.Query("object")
	if objectName == "" || !strings.HasPrefix(objectName, fmt.Sprintf("contracts/%s/", id)) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("object name does not belong to this contract"))
	}
	body, err := filestorage.Instance.GetContractPDF(ctx.Context(), objectName)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="contratto-archiviato.pdf"`)
	return ctx.Send(body)
}
