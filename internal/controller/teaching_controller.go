package controller

import (
	"strconv"

	"sermon-advisor-be/internal/dto"
	"sermon-advisor-be/internal/pkg/serverutils"
	"sermon-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITeachingController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	UpdateThemes(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type teachingController struct {
	teachingService service.ITeachingService
}

func NewTeachingController(teachingService service.ITeachingService) ITeachingController {
	return &teachingController{
		teachingService: teachingService,
	}
}

func (c *teachingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/teaching/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id/themes", c.UpdateThemes)
	h.Delete(":id", c.Delete)
}

func (c *teachingController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTeachingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.teachingService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create teaching", res))
}

func (c *teachingController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid teaching id")
	}

	res, err := c.teachingService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *teachingController) List(ctx *fiber.Ctx) error {
	channel := ctx.Query("channel")
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))

	res, err := c.teachingService.List(ctx.Context(), channel, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *teachingController) UpdateThemes(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid teaching id")
	}

	var req dto.UpdateTeachingThemesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.teachingService.UpdateThemes(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update themes", res))
}

func (c *teachingController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid teaching id")
	}

	if err := c.teachingService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete teaching", nil))
}
