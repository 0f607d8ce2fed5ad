// file: internals/features/library/rentals/model/rental_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookRentalModel: peminjaman satu copy. returned_at NULL = masih dipinjam.
type BookRentalModel struct {
	BookRentalID              uuid.UUID `json:"book_rental_id" gorm:"column:book_rental_id;type:uuid;primaryKey"`
	BookRentalBookInventoryID uuid.UUID `json:"book_rental_book_inventory_id" gorm:"column:book_rental_book_inventory_id;type:uuid;not null;index"`
	BookRentalStudentID       uuid.UUID `json:"book_rental_student_id" gorm:"column:book_rental_student_id;type:uuid;not null;index"`

	BookRentalRentedAt   time.Time  `json:"book_rental_rented_at" gorm:"column:book_rental_rented_at;not null"`
	BookRentalDueDate    time.Time  `json:"book_rental_due_date" gorm:"column:book_rental_due_date;not null"`
	BookRentalReturnedAt *time.Time `json:"book_rental_returned_at" gorm:"column:book_rental_returned_at;index"`

	BookRentalCreatedAt time.Time `json:"book_rental_created_at" gorm:"column:book_rental_created_at;autoCreateTime"`
	BookRentalUpdatedAt time.Time `json:"book_rental_updated_at" gorm:"column:book_rental_updated_at;autoUpdateTime"`
}

func (BookRentalModel) TableName() string { return "book_rentals" }

func (m *BookRentalModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookRentalID == uuid.Nil {
		m.BookRentalID = uuid.New()
	}
	return nil
}
