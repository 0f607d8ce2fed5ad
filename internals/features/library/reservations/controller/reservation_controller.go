// file: internals/features/library/reservations/controller/reservation_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	reservationService "academyku_backend/internals/features/library/reservations/service"
	helper "academyku_backend/internals/helpers"
)

var validate = validator.New()

type ReservationController struct {
	DB      *gorm.DB
	Service *reservationService.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:      db,
		Service: reservationService.NewReservationService(db),
	}
}

func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, reservationService.ErrAlreadyReserved):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, reservationService.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	default:
		return helper.MapDBError(c, err, "Gagal memproses reservasi")
	}
}

type reserveRequest struct {
	LectureID    uuid.UUID   `json:"lecture_id" validate:"required"`
	StudentID    uuid.UUID   `json:"student_id" validate:"required"`
	InventoryIDs []uuid.UUID `json:"inventory_ids" validate:"required,min=1"`
}

// POST /api/l/reservations
func (ctl *ReservationController) Reserve(c *fiber.Ctx) error {
	var req reserveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := ctl.Service.Reserve(req.LectureID, req.StudentID, req.InventoryIDs)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonCreated(c, "Reservasi berhasil dibuat", res)
}

// DELETE /api/l/reservations/:id
func (ctl *ReservationController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctl.Service.Cancel(id); err != nil {
		return serviceError(c, err)
	}
	return helper.JsonDeleted(c, "Reservasi dibatalkan", fiber.Map{"reservation_id": id})
}

// POST /api/l/reservations/:id/checkout
func (ctl *ReservationController) Checkout(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	dueDays := c.QueryInt("due_days", 14)

	rentals, err := ctl.Service.Checkout(id, dueDays)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonCreated(c, "Reservasi dikonversi jadi peminjaman", rentals)
}

// PATCH /api/l/rentals/:id/return
func (ctl *ReservationController) Return(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	rental, err := ctl.Service.Return(id)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonUpdated(c, "Buku dikembalikan", rental)
}
