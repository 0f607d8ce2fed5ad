package seeds

import (
	"gorm.io/gorm"

	pkgs "academyku_backend/internals/seeds/library/pkgs"
)

func RunAllSeeds(db *gorm.DB) {
	//* Library
	pkgs.SeedBookPkgsFromJSON(db, "internals/seeds/library/pkgs/data_book_pkgs.json")
}
