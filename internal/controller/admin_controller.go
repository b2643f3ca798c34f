package controller

import (
	"frontline-citizen-be/internal/dto"
	"frontline-citizen-be/internal/pkg/serverutils"
	"frontline-citizen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Metrics(ctx *fiber.Ctx) error
	DailySummary(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Get("metrics", c.Metrics)
	h.Get("summary/daily", c.DailySummary)
	h.Get("logs", c.Logs)
}

func (c *adminController) Metrics(ctx *fiber.Ctx) error {
	var req dto.MetricsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.Metrics(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetch metrics", res))
}

func (c *adminController) DailySummary(ctx *fiber.Ctx) error {
	res, err := c.adminService.DailySummary(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success build daily summary", res))
}

func (c *adminController) Logs(ctx *fiber.Ctx) error {
	var req dto.AdminLogsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}

	res, err := c.adminService.Logs(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetch logs", res))
}
