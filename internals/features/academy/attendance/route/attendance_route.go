// file: internals/features/academy/attendance/route/attendance_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "academyku_backend/internals/features/academy/attendance/controller"
)

func AttendanceRoutes(api fiber.Router, db *gorm.DB) {
	ctl := attendanceController.NewAttendanceController(db)

	att := api.Group("/attendances")
	att.Get("/", ctl.ListByLecture)
	att.Post("/check-in", ctl.CheckIn)
	att.Patch("/:id/check-out", ctl.CheckOut)
}
