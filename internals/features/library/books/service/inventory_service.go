// file: internals/features/library/books/service/inventory_service.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academyModel "academyku_backend/internals/features/academy/academies/model"
	userService "academyku_backend/internals/features/academy/users/service"
	bookModel "academyku_backend/internals/features/library/books/model"
	helper "academyku_backend/internals/helpers"
)

var ErrNotFound = userService.ErrNotFound

// InventoryService: registrasi copy fisik + penomoran plbn.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// AddInventory mendaftarkan copy baru dengan nomor "PE" + kode cabang +
// urutan 4 digit (PEGN0042). Urutan dihitung dari jumlah copy cabang itu;
// tabrakan nomor saat insert paralel tertangkap unique index → coba lagi.
func (s *InventoryService) AddInventory(bookID, academyID uuid.UUID, boxCode string) (*bookModel.BookInventoryModel, error) {
	var inv bookModel.BookInventoryModel

	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		lastErr = s.DB.Transaction(func(tx *gorm.DB) error {
			var book bookModel.BookModel
			if err := tx.First(&book, "book_id = ?", bookID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("book %s: %w", bookID, ErrNotFound)
				}
				return err
			}
			var academy academyModel.AcademyModel
			if err := tx.First(&academy, "academy_id = ?", academyID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("academy %s: %w", academyID, ErrNotFound)
				}
				return err
			}

			var count int64
			if err := tx.Model(&bookModel.BookInventoryModel{}).
				Where("book_inventory_academy_id = ?", academyID).
				Count(&count).Error; err != nil {
				return err
			}

			inv = bookModel.BookInventoryModel{
				BookInventoryBookID:    bookID,
				BookInventoryAcademyID: academyID,
				BookInventoryBoxCode:   boxCode,
				BookInventoryStatus:    bookModel.InventoryStatusNormal,
				BookInventoryPlbn:      fmt.Sprintf("PE%s%04d", academy.AcademyBranchKey, count+1),
			}
			return tx.Create(&inv).Error
		})
		if lastErr == nil {
			return &inv, nil
		}
		if !helper.IsUniqueViolation(lastErr) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// UpdateStatus: normal/damaged/lost.
func (s *InventoryService) UpdateStatus(inventoryID uuid.UUID, status string) (*bookModel.BookInventoryModel, error) {
	switch status {
	case bookModel.InventoryStatusNormal, bookModel.InventoryStatusDamaged, bookModel.InventoryStatusLost:
	default:
		return nil, fmt.Errorf("status %q tidak dikenal", status)
	}

	var inv bookModel.BookInventoryModel
	if err := s.DB.First(&inv, "book_inventory_id = ?", inventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("inventory %s: %w", inventoryID, ErrNotFound)
		}
		return nil, err
	}
	inv.BookInventoryStatus = status
	if err := s.DB.Save(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
