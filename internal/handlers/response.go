package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/apperror"
	"storefront/internal/query"
	"storefront/internal/services"
)

// respondError writes err as the {"error", "code"} envelope.
func respondError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	appErr := apperror.From(err)
	if appErr.Status >= fiber.StatusInternalServerError {
		logger.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
	}

	body := fiber.Map{"error": appErr.Message}
	if appErr.Code != "" {
		body["code"] = appErr.Code
	}
	return c.Status(appErr.Status).JSON(body)
}

// queryParams collects the request's query string.
func queryParams(c *fiber.Ctx) query.Params {
	return query.Params(c.Queries())
}

// requiredID parses the mandatory ?id= parameter.
func requiredID(c *fiber.Ctx) (uint, error) {
	return query.ParseID(c.Query("id"))
}

// decodeBody fills req from the JSON request body.
func decodeBody(c *fiber.Ctx, req services.Request) error {
	if !c.Is("json") {
		return apperror.Validation(apperror.CodeInvalidBody, "Request body must be JSON")
	}
	return services.Decode(req, c.Body())
}
