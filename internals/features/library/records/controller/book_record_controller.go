// file: internals/features/library/records/controller/book_record_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	recordModel "academyku_backend/internals/features/library/records/model"
	helper "academyku_backend/internals/helpers"
)

var validate = validator.New()

type BookRecordController struct {
	DB *gorm.DB
}

func NewBookRecordController(db *gorm.DB) *BookRecordController {
	return &BookRecordController{DB: db}
}

type createRecordRequest struct {
	StudentID   uuid.UUID `json:"student_id" validate:"required"`
	BookID      uuid.UUID `json:"book_id" validate:"required"`
	CorrectRate float64   `json:"correct_rate" validate:"gte=0,lte=100"`
	BL          float64   `json:"bl" validate:"gte=0"`
	WordCount   int       `json:"word_count" validate:"gte=0"`
}

// POST /api/l/records
func (ctl *BookRecordController) Create(c *fiber.Ctx) error {
	var req createRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row := recordModel.BookRecordModel{
		BookRecordStudentID:   req.StudentID,
		BookRecordBookID:      req.BookID,
		BookRecordCorrectRate: req.CorrectRate,
		BookRecordBL:          req.BL,
		BookRecordWordCount:   req.WordCount,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal menyimpan hasil baca")
	}
	return helper.JsonCreated(c, "Hasil baca tersimpan", row)
}

// GET /api/l/records?student_id=
func (ctl *BookRecordController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id wajib diisi dan valid")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	q := ctl.DB.Model(&recordModel.BookRecordModel{}).Where("book_record_student_id = ?", studentID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal menghitung hasil baca")
	}
	var rows []recordModel.BookRecordModel
	if err := q.Order("book_record_created_at DESC").Offset(paging.Offset).Limit(paging.Limit).Find(&rows).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal mengambil hasil baca")
	}
	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Riwayat baca", rows, &pg)
}
