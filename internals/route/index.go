// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "academyku_backend/internals/features/academy/attendance/route"
	lectureRoute "academyku_backend/internals/features/academy/lectures/route"
	libraryRoute "academyku_backend/internals/features/library/route"
	"academyku_backend/internals/middlewares/auth"
)

// SetupRoutes: semua endpoint di bawah /api, diproteksi JWT.
// /api/a = akademik (jadwal, absensi), /api/l = perpustakaan.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api", auth.JWTAuth())

	academy := api.Group("/a")
	lectureRoute.LectureRoutes(academy, db)
	attendanceRoute.AttendanceRoutes(academy, db)

	library := api.Group("/l")
	libraryRoute.LibraryRoutes(library, db)
}
