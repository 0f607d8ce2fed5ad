// file: internals/features/library/route/library_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookController "academyku_backend/internals/features/library/books/controller"
	pkgController "academyku_backend/internals/features/library/packages/controller"
	recController "academyku_backend/internals/features/library/recommendations/controller"
	recordController "academyku_backend/internals/features/library/records/controller"
	reservationController "academyku_backend/internals/features/library/reservations/controller"
)

// LibraryRoutes: katalog, copy, paket, hasil baca, reservasi, rekomendasi.
func LibraryRoutes(api fiber.Router, db *gorm.DB) {
	books := bookController.NewBookController(db)
	api.Get("/books", books.List)
	api.Post("/books", books.Create)
	api.Post("/inventories", books.AddInventory)
	api.Patch("/inventories/:id/status", books.UpdateInventoryStatus)

	pkgs := pkgController.NewBookPkgController(db)
	api.Get("/pkgs", pkgs.List)
	api.Post("/pkgs", pkgs.Create)
	api.Post("/pkgs/:id/books", pkgs.AddBook)

	records := recordController.NewBookRecordController(db)
	api.Get("/records", records.ListByStudent)
	api.Post("/records", records.Create)

	reservations := reservationController.NewReservationController(db)
	api.Post("/reservations", reservations.Reserve)
	api.Delete("/reservations/:id", reservations.Cancel)
	api.Post("/reservations/:id/checkout", reservations.Checkout)
	api.Patch("/rentals/:id/return", reservations.Return)

	recs := recController.NewRecommendationController(db)
	api.Post("/recommendations", recs.Recommend)
	api.Get("/recommendations/selected", recs.SelectedBooks)
}
