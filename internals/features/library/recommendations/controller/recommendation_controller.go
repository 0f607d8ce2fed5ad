// file: internals/features/library/recommendations/controller/recommendation_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	recService "academyku_backend/internals/features/library/recommendations/service"
	helper "academyku_backend/internals/helpers"
)

var validate = validator.New()

type RecommendationController struct {
	DB      *gorm.DB
	Service *recService.AllocatorService
}

func NewRecommendationController(db *gorm.DB) *RecommendationController {
	return &RecommendationController{
		DB:      db,
		Service: recService.NewAllocatorService(db),
	}
}

func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, recService.ErrExhausted):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, recService.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	default:
		return helper.MapDBError(c, err, "Gagal memproses rekomendasi")
	}
}

type recommendRequest struct {
	StudentID uuid.UUID   `json:"student_id" validate:"required"`
	Fnf       string      `json:"fnf" validate:"required,oneof=1 2"`
	RecordIDs []uuid.UUID `json:"record_ids"` // terisi → by-record, kosong → by-period
}

// POST /api/l/recommendations — by-record bila record_ids diisi, by-period
// (sejak rekomendasi terakhir / 6 bulan) bila kosong.
func (ctl *RecommendationController) Recommend(c *fiber.Ctx) error {
	var req recommendRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := ctl.Service.Recommend(req.StudentID, req.Fnf, req.RecordIDs)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonCreated(c, "Rekomendasi berhasil dibuat", result)
}

// GET /api/l/recommendations/selected?student_id=&fnf= — query ulang hasil
// final terakhir tanpa roll baru.
func (ctl *RecommendationController) SelectedBooks(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id wajib diisi dan valid")
	}
	fnf := c.Query("fnf")
	if fnf != "1" && fnf != "2" {
		return helper.JsonError(c, fiber.StatusBadRequest, "fnf harus 1 (fiksi) atau 2 (non-fiksi)")
	}

	result, err := ctl.Service.SelectedBooks(studentID, fnf)
	if err != nil {
		return serviceError(c, err)
	}
	return helper.JsonOK(c, "Rekomendasi terakhir", result)
}
