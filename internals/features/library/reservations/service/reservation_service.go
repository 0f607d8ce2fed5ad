// file: internals/features/library/reservations/service/reservation_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userService "academyku_backend/internals/features/academy/users/service"
	rentalModel "academyku_backend/internals/features/library/rentals/model"
	reservationModel "academyku_backend/internals/features/library/reservations/model"
	helper "academyku_backend/internals/helpers"
)

var (
	ErrNotFound        = userService.ErrNotFound
	ErrAlreadyReserved = errors.New("copy sudah diklaim reservasi lain")
)

// ReservationService: klaim copy fisik. Klaim = insert baris
// book_reservation_books; unique index pada inventory id yang jadi wasitnya,
// bukan read-then-write — insert kalah berarti copy keburu diambil.
type ReservationService struct {
	DB       *gorm.DB
	Identity *userService.IdentityService
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{
		DB:       db,
		Identity: userService.NewIdentityService(db),
	}
}

// Reserve: klaim satu set copy untuk siswa pada satu pertemuan.
// Satu copy saja gagal diklaim → seluruh reservasi batal (all-or-nothing),
// caller retry dengan baca availability yang baru.
func (s *ReservationService) Reserve(lectureID, studentID uuid.UUID, inventoryIDs []uuid.UUID) (*reservationModel.BookReservationModel, error) {
	if len(inventoryIDs) == 0 {
		return nil, fmt.Errorf("daftar copy kosong: %w", ErrNotFound)
	}

	var res reservationModel.BookReservationModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Identity.ResolveStudent(tx, studentID); err != nil {
			return err
		}

		res = reservationModel.BookReservationModel{
			BookReservationLectureID: lectureID,
			BookReservationStudentID: studentID,
		}
		if err := tx.Create(&res).Error; err != nil {
			return err
		}

		for _, invID := range inventoryIDs {
			claim := reservationModel.BookReservationBookModel{
				BookReservationBookBookReservationID: res.BookReservationID,
				BookReservationBookBookInventoryID:   invID,
			}
			if err := tx.Create(&claim).Error; err != nil {
				if helper.IsUniqueViolation(err) {
					return fmt.Errorf("copy %s: %w", invID, ErrAlreadyReserved)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Cancel: lepas semua klaim lalu hapus reservasinya.
func (s *ReservationService) Cancel(reservationID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var res reservationModel.BookReservationModel
		if err := tx.First(&res, "book_reservation_id = ?", reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %s: %w", reservationID, ErrNotFound)
			}
			return err
		}
		if err := tx.Where("book_reservation_book_book_reservation_id = ?", reservationID).
			Delete(&reservationModel.BookReservationBookModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&reservationModel.BookReservationModel{}, "book_reservation_id = ?", reservationID).Error
	})
}

// Checkout: reservasi jadi peminjaman. Klaim dilepas, tiap copy dapat baris
// rental (belum kembali), default tempo 14 hari.
func (s *ReservationService) Checkout(reservationID uuid.UUID, dueDays int) ([]rentalModel.BookRentalModel, error) {
	if dueDays <= 0 {
		dueDays = 14
	}

	var rentals []rentalModel.BookRentalModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var res reservationModel.BookReservationModel
		if err := tx.Preload("Books").First(&res, "book_reservation_id = ?", reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %s: %w", reservationID, ErrNotFound)
			}
			return err
		}

		now := time.Now()
		for _, claim := range res.Books {
			rentals = append(rentals, rentalModel.BookRentalModel{
				BookRentalBookInventoryID: claim.BookReservationBookBookInventoryID,
				BookRentalStudentID:       res.BookReservationStudentID,
				BookRentalRentedAt:        now,
				BookRentalDueDate:         now.AddDate(0, 0, dueDays),
			})
		}
		if len(rentals) > 0 {
			if err := tx.Create(&rentals).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("book_reservation_book_book_reservation_id = ?", reservationID).
			Delete(&reservationModel.BookReservationBookModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&reservationModel.BookReservationModel{}, "book_reservation_id = ?", reservationID).Error
	})
	if err != nil {
		return nil, err
	}
	return rentals, nil
}

// Return: tandai rental kembali; copy otomatis available lagi.
func (s *ReservationService) Return(rentalID uuid.UUID) (*rentalModel.BookRentalModel, error) {
	var rental rentalModel.BookRentalModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rental, "book_rental_id = ?", rentalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("rental %s: %w", rentalID, ErrNotFound)
			}
			return err
		}
		if rental.BookRentalReturnedAt != nil {
			return nil // sudah kembali, idempoten
		}
		now := time.Now()
		rental.BookRentalReturnedAt = &now
		return tx.Save(&rental).Error
	})
	if err != nil {
		return nil, err
	}
	return &rental, nil
}
