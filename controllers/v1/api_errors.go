package apiv1

import (
	"bim-collab-backend/models"
	apimodels "bim-collab-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func errorStatus(err error) int {
	switch {
	case models.IsKind(err, models.KindNotFound):
		return fiber.StatusNotFound
	case models.IsKind(err, models.KindStaleState),
		models.IsKind(err, models.KindInvalidTransition):
		return fiber.StatusConflict
	case models.IsKind(err, models.KindValidation),
		models.IsKind(err, models.KindMissingField),
		models.IsKind(err, models.KindIncompleteDocument):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// mutationResponse renders the outcome of a state-changing call. A
// notification dispatch failure is reported as success with a warning,
// the transition itself is already committed.
func mutationResponse(ctx *fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		if models.IsKind(err, models.KindNotificationFailure) {
			return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponseWithMessage(err.Error(), data))
		}
		return ctx.Status(errorStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}
