package recorder

import (
	"errors"

	"backend-geolog/internal/archive"
	"backend-geolog/internal/location"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/sessions", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			DeviceID string `json:"device_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.DeviceID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "device_id required")
		}
		session := svc.StartSession(c.Context(), body.DeviceID)
		return c.Status(fiber.StatusCreated).JSON(session)
	})

	r.Post("/sessions/:id/fixes", authMiddleware, func(c *fiber.Ctx) error {
		record, err := svc.CaptureFix(c.Context(), c.Params("id"))
		switch {
		case errors.Is(err, ErrSessionNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, location.ErrPermissionDenied):
			return fiber.NewError(fiber.StatusForbidden, "permission to access location was denied")
		case errors.Is(err, location.ErrUnavailable):
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	})

	r.Post("/sessions/:id/save", authMiddleware, func(c *fiber.Ctx) error {
		var record archive.LocationRecord
		if err := c.BodyParser(&record); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		err := svc.Persist(c.Context(), c.Params("id"), record)
		switch {
		case errors.Is(err, ErrSessionNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, archive.ErrCorrupt):
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{"saved": true})
	})

	r.Get("/sessions/:id", func(c *fiber.Ctx) error {
		session, err := svc.Session(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return c.JSON(session)
	})

	r.Get("/sessions/:id/summary", func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return c.JSON(summary)
	})
}
