package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"dailymoji-be/internal/dto"
	"dailymoji-be/internal/pkg/serverutils"
	"dailymoji-be/internal/service"
	"dailymoji-be/pkg/srj5"
)

type ICheckinController interface {
	RegisterRoutes(r fiber.Router)
	Checkin(ctx *fiber.Ctx) error
	Baseline(ctx *fiber.Ctx) error
	Healthz(ctx *fiber.Ctx) error
}

type checkinController struct {
	service service.ICheckinService
}

func NewCheckinController(service service.ICheckinService) ICheckinController {
	return &checkinController{service: service}
}

func (c *checkinController) RegisterRoutes(r fiber.Router) {
	r.Post("/checkin", c.Checkin)
	r.Post("/onboarding/baseline", c.Baseline)
	r.Get("/healthz", c.Healthz)
}

func (c *checkinController) Checkin(ctx *fiber.Ctx) error {
	var req dto.CheckinRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Checkin(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, srj5.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze checkin", res))
}

func (c *checkinController) Baseline(ctx *fiber.Ctx) error {
	var req dto.BaselineRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success compute baseline", c.service.Baseline(&req)))
}

func (c *checkinController) Healthz(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", fiber.Map{"status": "up"}))
}
