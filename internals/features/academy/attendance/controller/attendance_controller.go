// file: internals/features/academy/attendance/controller/attendance_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "academyku_backend/internals/features/academy/attendance/model"
	helper "academyku_backend/internals/helpers"
)

var validate = validator.New()

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

type checkInRequest struct {
	LectureID uuid.UUID `json:"lecture_id" validate:"required"`
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"omitempty,oneof=checked_in late makeup"`
}

// POST /api/a/attendances/check-in
func (ctl *AttendanceController) CheckIn(c *fiber.Ctx) error {
	var req checkInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	status := req.Status
	if status == "" {
		status = attendanceModel.AttendanceStatusCheckedIn
	}
	now := time.Now()
	row := attendanceModel.AttendanceModel{
		AttendanceLectureID: req.LectureID,
		AttendanceStudentID: req.StudentID,
		AttendanceStatus:    status,
		AttendanceEnteredAt: &now,
	}
	if err := ctl.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Absensi siswa untuk pertemuan ini sudah ada")
		}
		return helper.MapDBError(c, err, "Gagal mencatat absensi")
	}
	return helper.JsonCreated(c, "Absensi masuk tercatat", row)
}

// PATCH /api/a/attendances/:id/check-out
func (ctl *AttendanceController) CheckOut(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var row attendanceModel.AttendanceModel
	if err := ctl.DB.First(&row, "attendance_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Absensi tidak ditemukan")
	}

	now := time.Now()
	row.AttendanceExitedAt = &now
	row.AttendanceStatus = attendanceModel.AttendanceStatusCompleted
	if err := ctl.DB.Save(&row).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal memperbarui absensi")
	}
	return helper.JsonUpdated(c, "Absensi keluar tercatat", row)
}

// GET /api/a/attendances?lecture_id=
func (ctl *AttendanceController) ListByLecture(c *fiber.Ctx) error {
	lectureID, err := uuid.Parse(c.Query("lecture_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lecture_id wajib diisi dan valid")
	}
	var rows []attendanceModel.AttendanceModel
	if err := ctl.DB.Where("attendance_lecture_id = ?", lectureID).Find(&rows).Error; err != nil {
		return helper.MapDBError(c, err, "Gagal mengambil absensi")
	}
	return helper.JsonOK(c, "Daftar absensi", rows)
}
