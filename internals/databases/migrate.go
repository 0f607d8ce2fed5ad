package database

import (
	"log"

	"gorm.io/gorm"

	academyModel "academyku_backend/internals/features/academy/academies/model"
	attendanceModel "academyku_backend/internals/features/academy/attendance/model"
	lectureModel "academyku_backend/internals/features/academy/lectures/model"
	userModel "academyku_backend/internals/features/academy/users/model"
	bookModel "academyku_backend/internals/features/library/books/model"
	pkgModel "academyku_backend/internals/features/library/packages/model"
	recModel "academyku_backend/internals/features/library/recommendations/model"
	recordModel "academyku_backend/internals/features/library/records/model"
	rentalModel "academyku_backend/internals/features/library/rentals/model"
	reservationModel "academyku_backend/internals/features/library/reservations/model"
)

// MigrateAll menjalankan auto-migration seluruh model, urut dependensi.
func MigrateAll(db *gorm.DB) {
	err := db.AutoMigrate(
		&academyModel.AcademyModel{},
		&userModel.UserModel{},
		&userModel.StudentModel{},
		&userModel.TeacherModel{},
		&lectureModel.LectureInfoModel{},
		&lectureModel.LectureModel{},
		&lectureModel.LectureStudentModel{},
		&attendanceModel.AttendanceModel{},
		&bookModel.BookModel{},
		&bookModel.BookInventoryModel{},
		&recordModel.BookRecordModel{},
		&pkgModel.BookPkgModel{},
		&pkgModel.BookPkgBookModel{},
		&rentalModel.BookRentalModel{},
		&reservationModel.BookReservationModel{},
		&reservationModel.BookReservationBookModel{},
		&recModel.RecommendationModel{},
	)
	if err != nil {
		log.Fatalf("❌ Gagal migrasi: %v", err)
	}
	log.Println("✅ Migrasi selesai.")
}
