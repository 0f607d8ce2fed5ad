// file: internals/features/library/recommendations/service/allocator_service_test.go
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
	pkgModel "academyku_backend/internals/features/library/packages/model"
	recModel "academyku_backend/internals/features/library/recommendations/model"
	recordModel "academyku_backend/internals/features/library/records/model"
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
		&recordModel.BookRecordModel{},
		&pkgModel.BookPkgModel{},
		&pkgModel.BookPkgBookModel{},
		&rentalModel.BookRentalModel{},
		&reservationModel.BookReservationModel{},
		&reservationModel.BookReservationBookModel{},
		&recModel.RecommendationModel{},
	))
	return db
}

type fixture struct {
	academy academyModel.AcademyModel
	student userModel.StudentModel
	other   userModel.StudentModel
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{academy: academyModel.AcademyModel{AcademyName: "Academyku Gangnam", AcademyBranchKey: "GN"}}
	require.NoError(t, db.Create(&f.academy).Error)

	for i, target := range []*userModel.StudentModel{&f.student, &f.other} {
		u := userModel.UserModel{UserName: fmt.Sprintf("s%d-%s", i, t.Name()), UserFullName: "Siswa", UserPassword: "x"}
		require.NoError(t, db.Create(&u).Error)
		*target = userModel.StudentModel{StudentUserID: u.UserID, StudentAcademyID: f.academy.AcademyID}
		require.NoError(t, db.Create(target).Error)
	}
	return f
}

// seedBook: satu judul + n copy di akademi fixture.
func seedBook(t *testing.T, db *gorm.DB, f fixture, title string, copies int) (bookModel.BookModel, []bookModel.BookInventoryModel) {
	t.Helper()
	book := bookModel.BookModel{
		BookTitle:     title,
		BookFnf:       bookModel.FnfFiction,
		BookIL:        bookModel.ILAny,
		BookARScore:   3.0,
		BookWordCount: 5000,
	}
	require.NoError(t, db.Create(&book).Error)

	invs := make([]bookModel.BookInventoryModel, copies)
	for i := range invs {
		invs[i] = bookModel.BookInventoryModel{
			BookInventoryBookID:    book.BookID,
			BookInventoryAcademyID: f.academy.AcademyID,
			BookInventoryStatus:    bookModel.InventoryStatusNormal,
			BookInventoryPlbn:      fmt.Sprintf("PEGN%s%02d", title, i),
		}
		require.NoError(t, db.Create(&invs[i]).Error)
	}
	return book, invs
}

// seedPkg: paket fiksi dengan pita lebar yang pasti memuat performa fixture.
func seedPkg(t *testing.T, db *gorm.DB, name string, count int, books ...bookModel.BookModel) pkgModel.BookPkgModel {
	t.Helper()
	pkg := pkgModel.BookPkgModel{
		BookPkgName:  name,
		BookPkgFnf:   bookModel.FnfFiction,
		BookPkgIL:    bookModel.ILAny,
		BookPkgARMin: 0, BookPkgARMax: 10,
		BookPkgWCMin: 0, BookPkgWCMax: 100000,
		BookPkgCRMin: 0, BookPkgCRMax: 100,
		BookPkgCount: count,
	}
	require.NoError(t, db.Create(&pkg).Error)
	for _, b := range books {
		require.NoError(t, db.Create(&pkgModel.BookPkgBookModel{
			BookPkgBookBookPkgID: pkg.BookPkgID,
			BookPkgBookBookID:    b.BookID,
		}).Error)
	}
	return pkg
}

// seedRecord: hasil baca siswa (bahan agregasi), judul di luar paket tes.
func seedRecord(t *testing.T, db *gorm.DB, studentID uuid.UUID, cr, bl float64, wc int) recordModel.BookRecordModel {
	t.Helper()
	filler := bookModel.BookModel{BookTitle: "read-" + uuid.NewString()[:8], BookFnf: bookModel.FnfFiction, BookIL: bookModel.ILAny}
	require.NoError(t, db.Create(&filler).Error)
	rec := recordModel.BookRecordModel{
		BookRecordStudentID:   studentID,
		BookRecordBookID:      filler.BookID,
		BookRecordCorrectRate: cr,
		BookRecordBL:          bl,
		BookRecordWordCount:   wc,
	}
	require.NoError(t, db.Create(&rec).Error)
	return rec
}

func reserveCopy(t *testing.T, db *gorm.DB, studentID uuid.UUID, inv bookModel.BookInventoryModel) {
	t.Helper()
	res := reservationModel.BookReservationModel{
		BookReservationLectureID: uuid.New(),
		BookReservationStudentID: studentID,
	}
	require.NoError(t, db.Create(&res).Error)
	require.NoError(t, db.Create(&reservationModel.BookReservationBookModel{
		BookReservationBookBookReservationID: res.BookReservationID,
		BookReservationBookBookInventoryID:   inv.BookInventoryID,
	}).Error)
}

func TestRecommendPartitionsAvailableAndUnavailable(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewAllocatorServiceWithSeed(db, 42)

	// A & B bebas; C & D semuanya diklaim/dipinjam pihak lain
	bookA, _ := seedBook(t, db, f, "A", 1)
	bookB, _ := seedBook(t, db, f, "B", 1)
	bookC, invC := seedBook(t, db, f, "C", 3)
	bookD, invD := seedBook(t, db, f, "D", 2)
	for _, inv := range invC {
		reserveCopy(t, db, f.other.StudentID, inv)
	}
	for _, inv := range invD {
		require.NoError(t, db.Create(&rentalModel.BookRentalModel{
			BookRentalBookInventoryID: inv.BookInventoryID,
			BookRentalStudentID:       f.other.StudentID,
			BookRentalRentedAt:        inv.BookInventoryCreatedAt,
			BookRentalDueDate:         inv.BookInventoryCreatedAt.AddDate(0, 0, 14),
		}).Error)
	}

	seedPkg(t, db, "pita-1", 3, bookA, bookB, bookC, bookD)
	rec := seedRecord(t, db, f.student.StudentID, 80, 3.0, 5000)

	result, err := svc.Recommend(f.student.StudentID, bookModel.FnfFiction, []uuid.UUID{rec.BookRecordID})
	require.NoError(t, err)
	require.Equal(t, PhaseFound, result.Phase)
	require.Len(t, result.Items, 3)

	availableBooks := map[uuid.UUID]bool{}
	unavailableCount := 0
	for _, it := range result.Items {
		if it.Available {
			availableBooks[it.Inventory.BookInventoryBookID] = true
		} else {
			unavailableCount++
		}
	}
	// 2 available (A dan B), 1 pelengkap dari partisi unavailable
	require.Len(t, availableBooks, 2)
	require.True(t, availableBooks[bookA.BookID])
	require.True(t, availableBooks[bookB.BookID])
	require.Equal(t, 1, unavailableCount)
}

func TestRecommendNeverReturnsContendedCopyAsAvailable(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewAllocatorServiceWithSeed(db, 7)

	bookA, invA := seedBook(t, db, f, "A", 2)
	// satu copy A direservasi siswa lain, satunya dipinjam belum kembali
	reserveCopy(t, db, f.other.StudentID, invA[0])
	require.NoError(t, db.Create(&rentalModel.BookRentalModel{
		BookRentalBookInventoryID: invA[1].BookInventoryID,
		BookRentalStudentID:       f.other.StudentID,
		BookRentalRentedAt:        invA[1].BookInventoryCreatedAt,
		BookRentalDueDate:         invA[1].BookInventoryCreatedAt.AddDate(0, 0, 14),
	}).Error)
	bookB, _ := seedBook(t, db, f, "B", 1)

	seedPkg(t, db, "pita-1", 2, bookA, bookB)
	rec := seedRecord(t, db, f.student.StudentID, 80, 3.0, 5000)

	result, err := svc.Recommend(f.student.StudentID, bookModel.FnfFiction, []uuid.UUID{rec.BookRecordID})
	require.NoError(t, err)

	contended := map[uuid.UUID]bool{
		invA[0].BookInventoryID: true,
		invA[1].BookInventoryID: true,
	}
	for _, it := range result.Items {
		if it.Available {
			require.False(t, contended[it.Inventory.BookInventoryID],
				"copy yang diklaim pihak lain tidak boleh dilaporkan available")
		}
	}
}

func TestRecommendExhaustedWhenHistoryExcludesEverything(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewAllocatorServiceWithSeed(db, 1)

	bookA, _ := seedBook(t, db, f, "A", 1)
	pkg := seedPkg(t, db, "pita-1", 1, bookA)
	rec := seedRecord(t, db, f.student.StudentID, 80, 3.0, 5000)

	// satu-satunya paket cocok sudah jadi rekomendasi paling baru
	require.NoError(t, db.Create(&recModel.RecommendationModel{
		RecommendationStudentID: f.student.StudentID,
		RecommendationFnf:       bookModel.FnfFiction,
		RecommendationPkgName:   pkg.BookPkgName,
	}).Error)

	_, err := svc.Recommend(f.student.StudentID, bookModel.FnfFiction, []uuid.UUID{rec.BookRecordID})
	require.ErrorIs(t, err, ErrExhausted)
}

func TestRecommendHistoryScopedPerFnf(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewAllocatorServiceWithSeed(db, 5)

	// satu-satunya paket nonfiksi, dan siswa sudah menerimanya
	bookNF := bookModel.BookModel{BookTitle: "NF", BookFnf: bookModel.FnfNonFiction, BookIL: bookModel.ILAny}
	require.NoError(t, db.Create(&bookNF).Error)
	pkgNF := pkgModel.BookPkgModel{
		BookPkgName:  "pita-nf",
		BookPkgFnf:   bookModel.FnfNonFiction,
		BookPkgIL:    bookModel.ILAny,
		BookPkgARMin: 0, BookPkgARMax: 10,
		BookPkgWCMin: 0, BookPkgWCMax: 100000,
		BookPkgCRMin: 0, BookPkgCRMax: 100,
		BookPkgCount: 1,
	}
	require.NoError(t, db.Create(&pkgNF).Error)
	require.NoError(t, db.Create(&pkgModel.BookPkgBookModel{
		BookPkgBookBookPkgID: pkgNF.BookPkgID,
		BookPkgBookBookID:    bookNF.BookID,
	}).Error)

	rec := seedRecord(t, db, f.student.StudentID, 80, 3.0, 5000)

	nfHist := recModel.RecommendationModel{
		RecommendationStudentID: f.student.StudentID,
		RecommendationFnf:       bookModel.FnfNonFiction,
		RecommendationPkgName:   pkgNF.BookPkgName,
	}
	require.NoError(t, db.Create(&nfHist).Error)
	require.NoError(t, db.Model(&nfHist).
		Update("recommendation_created_at", nfHist.RecommendationCreatedAt.AddDate(0, 0, -7)).Error)

	// rekomendasi fiksi yang lebih baru tidak boleh "menutupi" pita-nf di
	// fase relax untuk permintaan nonfiksi
	require.NoError(t, db.Create(&recModel.RecommendationModel{
		RecommendationStudentID: f.student.StudentID,
		RecommendationFnf:       bookModel.FnfFiction,
		RecommendationPkgName:   "pita-f",
	}).Error)

	_, err := svc.Recommend(f.student.StudentID, bookModel.FnfNonFiction, []uuid.UUID{rec.BookRecordID})
	require.ErrorIs(t, err, ErrExhausted)
}

func TestRecommendRelaxedPhaseReusesOlderPackage(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewAllocatorServiceWithSeed(db, 3)

	bookA, _ := seedBook(t, db, f, "A", 1)
	bookB, _ := seedBook(t, db, f, "B", 1)
	pkgOld := seedPkg(t, db, "pita-lama", 1, bookA)
	pkgNew := seedPkg(t, db, "pita-baru", 1, bookB)
	rec := seedRecord(t, db, f.student.StudentID, 80, 3.0, 5000)

	// histori: pita-lama dulu, pita-baru paling akhir → full exclusion kosong,
	// relax hanya mengecualikan pita-baru
	older := recModel.RecommendationModel{
		RecommendationStudentID: f.student.StudentID,
		RecommendationFnf:       bookModel.FnfFiction,
		RecommendationPkgName:   pkgOld.BookPkgName,
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Model(&older).
		Update("recommendation_created_at", older.RecommendationCreatedAt.AddDate(0, 0, -30)).Error)
	require.NoError(t, db.Create(&recModel.RecommendationModel{
		RecommendationStudentID: f.student.StudentID,
		RecommendationFnf:       bookModel.FnfFiction,
		RecommendationPkgName:   pkgNew.BookPkgName,
	}).Error)

	result, err := svc.Recommend(f.student.StudentID, bookModel.FnfFiction, []uuid.UUID{rec.BookRecordID})
	require.NoError(t, err)
	require.Equal(t, PhaseFoundRelaxed, result.Phase)
	require.Equal(t, pkgOld.BookPkgName, result.PkgName)
}

func TestRecommendSkipsAlreadyReadTitles(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewAllocatorServiceWithSeed(db, 9)

	bookA, _ := seedBook(t, db, f, "A", 1)
	bookB, _ := seedBook(t, db, f, "B", 1)
	seedPkg(t, db, "pita-1", 2, bookA, bookB)

	// siswa sudah pernah membaca A
	require.NoError(t, db.Create(&recordModel.BookRecordModel{
		BookRecordStudentID:   f.student.StudentID,
		BookRecordBookID:      bookA.BookID,
		BookRecordCorrectRate: 90,
		BookRecordBL:          3.0,
		BookRecordWordCount:   5000,
	}).Error)

	result, err := svc.Recommend(f.student.StudentID, bookModel.FnfFiction, nil)
	require.NoError(t, err)
	for _, it := range result.Items {
		require.NotEqual(t, bookA.BookID, it.Inventory.BookInventoryBookID)
	}
}

func TestSelectedBooksReturnsSameTitlesWithoutReroll(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	svc := NewAllocatorServiceWithSeed(db, 11)

	bookA, _ := seedBook(t, db, f, "A", 1)
	bookB, _ := seedBook(t, db, f, "B", 1)
	bookC, _ := seedBook(t, db, f, "C", 1)
	seedPkg(t, db, "pita-1", 2, bookA, bookB, bookC)
	rec := seedRecord(t, db, f.student.StudentID, 80, 3.0, 5000)

	first, err := svc.Recommend(f.student.StudentID, bookModel.FnfFiction, []uuid.UUID{rec.BookRecordID})
	require.NoError(t, err)

	chosen := map[uuid.UUID]bool{}
	for _, it := range first.Items {
		chosen[it.Inventory.BookInventoryBookID] = true
	}

	// query ulang beberapa kali: judul selalu sama persis
	for i := 0; i < 3; i++ {
		again, err := svc.SelectedBooks(f.student.StudentID, bookModel.FnfFiction)
		require.NoError(t, err)
		require.Equal(t, first.PkgName, again.PkgName)
		require.Len(t, again.Items, len(first.Items))
		for _, it := range again.Items {
			require.True(t, chosen[it.Inventory.BookInventoryBookID],
				"query ulang mengembalikan judul di luar pilihan awal")
		}
	}
}

func TestRecommendRetriesNextPackageWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)

	// pita-kosong tidak punya judul sama sekali; pita-isi punya
	bookA, _ := seedBook(t, db, f, "A", 1)
	seedPkg(t, db, "pita-kosong", 1)
	seedPkg(t, db, "pita-isi", 1, bookA)
	rec := seedRecord(t, db, f.student.StudentID, 80, 3.0, 5000)

	// seed berapa pun, paket kosong harus dibuang dan alokasi tetap berhasil
	for seed := int64(0); seed < 5; seed++ {
		db.Where("1 = 1").Delete(&recModel.RecommendationModel{})
		svc := NewAllocatorServiceWithSeed(db, seed)
		result, err := svc.Recommend(f.student.StudentID, bookModel.FnfFiction, []uuid.UUID{rec.BookRecordID})
		require.NoError(t, err)
		require.Equal(t, "pita-isi", result.PkgName)
	}
}
