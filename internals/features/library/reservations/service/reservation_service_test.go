// file: internals/features/library/reservations/service/reservation_service_test.go
package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	academyModel "academyku_backend/internals/features/academy/academies/model"
	userModel "academyku_backend/internals/features/academy/users/model"
	bookModel "academyku_backend/internals/features/library/books/model"
	rentalModel "academyku_backend/internals/features/library/rentals/model"
	reservationModel "academyku_backend/internals/features/library/reservations/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&academyModel.AcademyModel{},
		&userModel.UserModel{},
		&userModel.StudentModel{},
		&bookModel.BookModel{},
		&bookModel.BookInventoryModel{},
		&rentalModel.BookRentalModel{},
		&reservationModel.BookReservationModel{},
		&reservationModel.BookReservationBookModel{},
	))
	return db
}

func seedStudentAndCopies(t *testing.T, db *gorm.DB, copies int) (userModel.StudentModel, userModel.StudentModel, []bookModel.BookInventoryModel) {
	t.Helper()

	academy := academyModel.AcademyModel{AcademyName: "Academyku Gangnam", AcademyBranchKey: "GN"}
	require.NoError(t, db.Create(&academy).Error)

	var students [2]userModel.StudentModel
	for i := range students {
		u := userModel.UserModel{UserName: fmt.Sprintf("s%d-%s", i, t.Name()), UserFullName: "Siswa", UserPassword: "x"}
		require.NoError(t, db.Create(&u).Error)
		students[i] = userModel.StudentModel{StudentUserID: u.UserID, StudentAcademyID: academy.AcademyID}
		require.NoError(t, db.Create(&students[i]).Error)
	}

	book := bookModel.BookModel{BookTitle: "Judul", BookFnf: bookModel.FnfFiction, BookIL: bookModel.ILAny}
	require.NoError(t, db.Create(&book).Error)

	invs := make([]bookModel.BookInventoryModel, copies)
	for i := range invs {
		invs[i] = bookModel.BookInventoryModel{
			BookInventoryBookID:    book.BookID,
			BookInventoryAcademyID: academy.AcademyID,
			BookInventoryStatus:    bookModel.InventoryStatusNormal,
			BookInventoryPlbn:      fmt.Sprintf("PEGN%04d", i+1),
		}
		require.NoError(t, db.Create(&invs[i]).Error)
	}
	return students[0], students[1], invs
}

func invIDs(invs ...bookModel.BookInventoryModel) []uuid.UUID {
	ids := make([]uuid.UUID, len(invs))
	for i, inv := range invs {
		ids[i] = inv.BookInventoryID
	}
	return ids
}

func TestReserveClaimsCopies(t *testing.T) {
	db := newTestDB(t)
	s1, _, invs := seedStudentAndCopies(t, db, 2)
	svc := NewReservationService(db)

	res, err := svc.Reserve(uuid.New(), s1.StudentID, invIDs(invs...))
	require.NoError(t, err)

	var claims int64
	require.NoError(t, db.Model(&reservationModel.BookReservationBookModel{}).
		Where("book_reservation_book_book_reservation_id = ?", res.BookReservationID).
		Count(&claims).Error)
	require.EqualValues(t, 2, claims)

	// relasi Books harus bisa di-preload (dipakai Checkout)
	var loaded reservationModel.BookReservationModel
	require.NoError(t, db.Preload("Books").
		First(&loaded, "book_reservation_id = ?", res.BookReservationID).Error)
	require.Len(t, loaded.Books, 2)
}

func TestReserveSecondClaimIsAllOrNothing(t *testing.T) {
	db := newTestDB(t)
	s1, s2, invs := seedStudentAndCopies(t, db, 2)
	svc := NewReservationService(db)

	_, err := svc.Reserve(uuid.New(), s1.StudentID, invIDs(invs[0]))
	require.NoError(t, err)

	// siswa kedua minta copy bebas (1) + copy yang sudah diklaim (0)
	_, err = svc.Reserve(uuid.New(), s2.StudentID, invIDs(invs[1], invs[0]))
	require.ErrorIs(t, err, ErrAlreadyReserved)

	// rollback total: copy bebas tidak ikut terklaim, reservasi kedua tidak ada
	var claims int64
	require.NoError(t, db.Model(&reservationModel.BookReservationBookModel{}).Count(&claims).Error)
	require.EqualValues(t, 1, claims)

	var reservations int64
	require.NoError(t, db.Model(&reservationModel.BookReservationModel{}).Count(&reservations).Error)
	require.EqualValues(t, 1, reservations)
}

func TestCancelReleasesClaims(t *testing.T) {
	db := newTestDB(t)
	s1, s2, invs := seedStudentAndCopies(t, db, 1)
	svc := NewReservationService(db)

	res, err := svc.Reserve(uuid.New(), s1.StudentID, invIDs(invs[0]))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(res.BookReservationID))

	// setelah dilepas, siswa lain bisa mengklaim copy yang sama
	_, err = svc.Reserve(uuid.New(), s2.StudentID, invIDs(invs[0]))
	require.NoError(t, err)
}

func TestCheckoutConvertsClaimsToRentals(t *testing.T) {
	db := newTestDB(t)
	s1, _, invs := seedStudentAndCopies(t, db, 2)
	svc := NewReservationService(db)

	res, err := svc.Reserve(uuid.New(), s1.StudentID, invIDs(invs...))
	require.NoError(t, err)

	rentals, err := svc.Checkout(res.BookReservationID, 14)
	require.NoError(t, err)
	require.Len(t, rentals, 2)
	for _, r := range rentals {
		require.Equal(t, s1.StudentID, r.BookRentalStudentID)
		require.Nil(t, r.BookRentalReturnedAt)
	}

	// klaim reservasi dilepas semua
	var claims int64
	require.NoError(t, db.Model(&reservationModel.BookReservationBookModel{}).Count(&claims).Error)
	require.Zero(t, claims)

	// pengembalian menandai returned_at
	back, err := svc.Return(rentals[0].BookRentalID)
	require.NoError(t, err)
	require.NotNil(t, back.BookRentalReturnedAt)
}
