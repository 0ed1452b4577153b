package apiv1

import (
	"bim-collab-backend/controllers"
	"bim-collab-backend/db"
	"bim-collab-backend/lib/application"
	companystore "bim-collab-backend/lib/profile/company-store"
	professionalstore "bim-collab-backend/lib/profile/professional-store"
	"bim-collab-backend/middleware"
	apimodels "bim-collab-backend/models/api"
	applicationapimodels "bim-collab-backend/models/api/application"
	dbmodels "bim-collab-backend/models/db"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type applicationApiController struct {
	controllers.BaseAPIController
	professionalStore professionalstore.Provider
	companyStore      companystore.Provider
}

func InitApplicationApiRouters(app fiber.Router) {
	controller := applicationApiController{
		professionalStore: professionalstore.NewInstance(db.DB),
		companyStore:      companystore.NewInstance(db.DB),
	}
	app.Route("applications", func(router fiber.Router) {
		router.Post("", middleware.ProfessionalRoleRequired(), controller.submit)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Delete("", middleware.ProfessionalRoleRequired(), controller.withdraw)
			idRoute.Put("review", middleware.CompanyRoleRequired(), controller.startReview)
			idRoute.Put("preselect", middleware.CompanyRoleRequired(), controller.preselect)
			idRoute.Put("accept", middleware.CompanyRoleRequired(), controller.accept)
			idRoute.Put("reject", middleware.CompanyRoleRequired(), controller.reject)
			idRoute.Route("interview", func(interviewRoute fiber.Router) {
				interviewRoute.Put("propose", middleware.CompanyRoleRequired(), controller.proposeInterview)
				interviewRoute.Put("accept", middleware.ProfessionalRoleRequired(), controller.acceptInterview)
				interviewRoute.Put("decline", middleware.ProfessionalRoleRequired(), controller.declineInterview)
				interviewRoute.Put("reschedule", middleware.ProfessionalRoleRequired(), controller.rescheduleInterview)
			})
		})
	})
}

func (c *applicationApiController) professionalID(ctx *fiber.Ctx) (string, error) {
	rec, err := c.professionalStore.GetByUserID(middleware.GetUserID(ctx))
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", errors.New("professional profile not found for current user")
	}
	return rec.ID, nil
}

func (c *applicationApiController) companyID(ctx *fiber.Ctx) (string, error) {
	rec, err := c.companyStore.GetByUserID(middleware.GetUserID(ctx))
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", errors.New("company profile not found for current user")
	}
	return rec.ID, nil
}

// @Summary Submit application
// @Tags Applications
// @Description Submit a new application for an open project
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.SubmitData	true	"application body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications [post]
func (c *applicationApiController) submit(ctx *fiber.Ctx) error {
	var payload applicationapimodels.SubmitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	professionalID, err := c.professionalID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.Submit(professionalID, payload)
	return mutationResponse(ctx, view, err)
}

// @Summary Application list
// @Tags Applications
// @Description List applications by filter
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dbmodels.ApplicationFilter	true	"request filter body"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/list [post]
func (c *applicationApiController) list(ctx *fiber.Ctx) error {
	var payload dbmodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := application.Instance.List(payload)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get application
// @Tags Applications
// @Description Get application by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.GetByID(id)
	if err != nil {
		return ctx.Status(errorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Withdraw application
// @Tags Applications
// @Description Withdraw own application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [delete]
func (c *applicationApiController) withdraw(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	professionalID, err := c.professionalID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	if err = application.Instance.Withdraw(professionalID, id); err != nil {
		return ctx.Status(errorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Start review
// @Tags Applications
// @Description Move a submitted application to review
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/review [put]
func (c *applicationApiController) startReview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID, err := c.companyID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.StartReview(companyID, id)
	return mutationResponse(ctx, view, err)
}

// @Summary Preselect
// @Tags Applications
// @Description Shortlist an application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/preselect [put]
func (c *applicationApiController) preselect(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID, err := c.companyID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.Preselect(companyID, id)
	return mutationResponse(ctx, view, err)
}

// @Summary Accept application
// @Tags Applications
// @Description Accept an application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/accept [put]
func (c *applicationApiController) accept(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID, err := c.companyID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.Accept(companyID, id)
	return mutationResponse(ctx, view, err)
}

// @Summary Reject application
// @Tags Applications
// @Description Reject an application with a motivated reason
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 applicationapimodels.RejectData	true	"rejection reason"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/reject [put]
func (c *applicationApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID, err := c.companyID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.Reject(companyID, id, payload)
	return mutationResponse(ctx, view, err)
}

// @Summary Propose interview
// @Tags Interview
// @Description Propose an interview to a preselected professional
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 applicationapimodels.InterviewProposalData	true	"proposal body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/interview/propose [put]
func (c *applicationApiController) proposeInterview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.InterviewProposalData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	companyID, err := c.companyID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.ProposeInterview(companyID, id, payload)
	return mutationResponse(ctx, view, err)
}

// @Summary Accept interview
// @Tags Interview
// @Description Accept a proposed interview, optionally with a counter date
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 applicationapimodels.InterviewAcceptData	true	"response body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/interview/accept [put]
func (c *applicationApiController) acceptInterview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.InterviewAcceptData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	professionalID, err := c.professionalID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.AcceptInterview(professionalID, id, payload)
	return mutationResponse(ctx, view, err)
}

// @Summary Decline interview
// @Tags Interview
// @Description Decline a proposed interview with a motivated reason
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 applicationapimodels.InterviewDeclineData	true	"response body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/interview/decline [put]
func (c *applicationApiController) declineInterview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.InterviewDeclineData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	professionalID, err := c.professionalID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.DeclineInterview(professionalID, id, payload)
	return mutationResponse(ctx, view, err)
}

// @Summary Reschedule interview
// @Tags Interview
// @Description Ask to reschedule a proposed interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true	"rec ID"
// @Param	body body	 applicationapimodels.InterviewRescheduleData	true	"response body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/interview/reschedule [put]
func (c *applicationApiController) rescheduleInterview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload applicationapimodels.InterviewRescheduleData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	professionalID, err := c.professionalID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	view, err := application.Instance.RescheduleInterview(professionalID, id, payload)
	return mutationResponse(ctx, view, err)
}
