// file: internals/features/academy/lectures/route/lecture_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lectureController "academyku_backend/internals/features/academy/lectures/controller"
)

// LectureRoutes: semua endpoint jadwal kuliah di bawah group yang sudah
// diproteksi JWT (lihat internals/route/index.go).
func LectureRoutes(api fiber.Router, db *gorm.DB) {
	ctl := lectureController.NewLectureController(db)

	lectures := api.Group("/lectures")
	lectures.Get("/", ctl.List)
	lectures.Post("/", ctl.Create)
	lectures.Get("/:id", ctl.GetByID)
	lectures.Patch("/:id", ctl.Update)
	lectures.Delete("/:id", ctl.Delete)
	lectures.Post("/:id/students", ctl.AddStudent)
	lectures.Delete("/:id/students/:student_id", ctl.RemoveStudent)

	infos := api.Group("/lecture-infos")
	infos.Patch("/:id", ctl.UpdateInfo)
	infos.Delete("/:id", ctl.DeleteInfo)
	infos.Post("/:id/makeup", ctl.CreateMakeup)
}
