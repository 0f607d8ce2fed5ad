// file: internals/features/library/recommendations/service/allocator_service.go
package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "academyku_backend/internals/features/academy/users/model"
	userService "academyku_backend/internals/features/academy/users/service"
	bookModel "academyku_backend/internals/features/library/books/model"
	pkgModel "academyku_backend/internals/features/library/packages/model"
	recModel "academyku_backend/internals/features/library/recommendations/model"
	recordModel "academyku_backend/internals/features/library/records/model"
	rentalModel "academyku_backend/internals/features/library/rentals/model"
	reservationModel "academyku_backend/internals/features/library/reservations/model"
)

var (
	ErrNotFound  = userService.ErrNotFound
	ErrExhausted = errors.New("tidak ada paket yang bisa dialokasikan")
)

// Fase seleksi paket (seleksi dua fase, bukan exception berantai).
type SelectionPhase string

const (
	PhaseFound        SelectionPhase = "found"         // ekslusi histori penuh
	PhaseFoundRelaxed SelectionPhase = "found-relaxed" // ekslusi hanya paket terakhir
	PhaseNone         SelectionPhase = "none"
)

// AllocatorService: mesin pencocokan paket + alokasi copy fisik.
type AllocatorService struct {
	DB  *gorm.DB
	rng *rand.Rand
}

func NewAllocatorService(db *gorm.DB) *AllocatorService {
	return &AllocatorService{
		DB:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewAllocatorServiceWithSeed: rng deterministik, dipakai test.
func NewAllocatorServiceWithSeed(db *gorm.DB, seed int64) *AllocatorService {
	return &AllocatorService{
		DB:  db,
		rng: rand.New(rand.NewSource(seed)),
	}
}

/* =======================================================
   Agregasi performa baca
======================================================= */

type Performance struct {
	MeanCorrectRate float64 `json:"mean_correct_rate"`
	MeanBL          float64 `json:"mean_bl"`
	MeanWordCount   float64 `json:"mean_word_count"`
	RecordCount     int     `json:"record_count"`
}

// AggregatePerformance menghitung rata-rata performa siswa.
// recordIDs terisi → pakai record itu saja. Kosong → record sejak rekomendasi
// terakhir; bila tidak ada, mundur ke 6 bulan terakhir.
func (s *AllocatorService) AggregatePerformance(tx *gorm.DB, student *userModel.StudentModel, recordIDs []uuid.UUID) (*Performance, error) {
	if tx == nil {
		tx = s.DB
	}

	q := tx.Model(&recordModel.BookRecordModel{}).
		Where("book_record_student_id = ?", student.StudentID)

	var records []recordModel.BookRecordModel
	if len(recordIDs) > 0 {
		if err := q.Where("book_record_id IN ?", recordIDs).Find(&records).Error; err != nil {
			return nil, err
		}
		if len(records) != len(recordIDs) {
			return nil, fmt.Errorf("sebagian book record: %w", ErrNotFound)
		}
	} else {
		since := time.Now().AddDate(0, -6, 0)
		if student.StudentLastRecommendedAt != nil {
			// coba jendela sejak rekomendasi terakhir dulu
			if err := q.Session(&gorm.Session{}).
				Where("book_record_created_at > ?", *student.StudentLastRecommendedAt).
				Find(&records).Error; err != nil {
				return nil, err
			}
		}
		if len(records) == 0 {
			if err := tx.Model(&recordModel.BookRecordModel{}).
				Where("book_record_student_id = ? AND book_record_created_at > ?", student.StudentID, since).
				Find(&records).Error; err != nil {
				return nil, err
			}
		}
	}

	if len(records) == 0 {
		return &Performance{}, nil
	}

	var sumCR, sumBL, sumWC float64
	for _, r := range records {
		sumCR += r.BookRecordCorrectRate
		sumBL += r.BookRecordBL
		sumWC += float64(r.BookRecordWordCount)
	}
	n := float64(len(records))
	return &Performance{
		MeanCorrectRate: sumCR / n,
		MeanBL:          sumBL / n,
		MeanWordCount:   sumWC / n,
		RecordCount:     len(records),
	}, nil
}

/* =======================================================
   Seleksi paket dua fase
======================================================= */

// SelectPackages: kandidat paket matching flag + pita skor, dua fase ekslusi.
// Fase 1: buang semua paket di histori. Fase 2 (relax): buang hanya paket
// yang paling terakhir diberikan.
func (s *AllocatorService) SelectPackages(tx *gorm.DB, studentID uuid.UUID, fnf string, perf *Performance) ([]pkgModel.BookPkgModel, SelectionPhase, error) {
	if tx == nil {
		tx = s.DB
	}

	var all []pkgModel.BookPkgModel
	if err := tx.Where("book_pkg_fnf = ?", fnf).Find(&all).Error; err != nil {
		return nil, PhaseNone, err
	}

	var matching []pkgModel.BookPkgModel
	for _, p := range all {
		if p.Contains(perf.MeanCorrectRate, perf.MeanBL, perf.MeanWordCount) {
			matching = append(matching, p)
		}
	}
	if len(matching) == 0 {
		return nil, PhaseNone, nil
	}

	// histori hanya untuk flag yang diminta; rekomendasi fiksi tidak boleh
	// menggeser "paket terakhir" milik nonfiksi (dan sebaliknya)
	var history []recModel.RecommendationModel
	if err := tx.Where("recommendation_student_id = ? AND recommendation_fnf = ?", studentID, fnf).
		Order("recommendation_created_at DESC").
		Find(&history).Error; err != nil {
		return nil, PhaseNone, err
	}

	fullExcl := make(map[string]struct{}, len(history))
	for _, h := range history {
		fullExcl[h.RecommendationPkgName] = struct{}{}
	}

	phase1 := filterExcluded(matching, fullExcl)
	if len(phase1) > 0 {
		return phase1, PhaseFound, nil
	}

	// relax: hanya paket paling baru yang dikecualikan
	relaxExcl := map[string]struct{}{}
	if len(history) > 0 {
		relaxExcl[history[0].RecommendationPkgName] = struct{}{}
	}
	phase2 := filterExcluded(matching, relaxExcl)
	if len(phase2) > 0 {
		return phase2, PhaseFoundRelaxed, nil
	}
	return nil, PhaseNone, nil
}

func filterExcluded(pkgs []pkgModel.BookPkgModel, excluded map[string]struct{}) []pkgModel.BookPkgModel {
	var out []pkgModel.BookPkgModel
	for _, p := range pkgs {
		if _, ok := excluded[p.BookPkgName]; !ok {
			out = append(out, p)
		}
	}
	return out
}

/* =======================================================
   Alokasi copy fisik
======================================================= */

type AllocatedCopy struct {
	Inventory bookModel.BookInventoryModel `json:"inventory"`
	Available bool                         `json:"available"`
}

// allocateFromPackage: isi paket → buang yang sudah dibaca → resolve copy di
// akademi siswa → partisi available/unavailable (maks. satu copy per judul)
// → sample available, sisanya diisi unavailable sampai pkg.count.
func (s *AllocatorService) allocateFromPackage(tx *gorm.DB, student *userModel.StudentModel, pkg *pkgModel.BookPkgModel) ([]AllocatedCopy, error) {
	var bookIDs []uuid.UUID
	if err := tx.Model(&pkgModel.BookPkgBookModel{}).
		Where("book_pkg_book_book_pkg_id = ?", pkg.BookPkgID).
		Pluck("book_pkg_book_book_id", &bookIDs).Error; err != nil {
		return nil, err
	}
	if len(bookIDs) == 0 {
		return nil, nil
	}

	bq := tx.Model(&bookModel.BookModel{}).Where("book_id IN ?", bookIDs)
	if pkg.BookPkgIL != bookModel.ILAny {
		bq = bq.Where("book_il = ?", pkg.BookPkgIL)
	}
	var books []bookModel.BookModel
	if err := bq.Find(&books).Error; err != nil {
		return nil, err
	}

	// buang judul yang sudah pernah dibaca siswa
	var readIDs []uuid.UUID
	if err := tx.Model(&recordModel.BookRecordModel{}).
		Where("book_record_student_id = ?", student.StudentID).
		Pluck("book_record_book_id", &readIDs).Error; err != nil {
		return nil, err
	}
	read := make(map[uuid.UUID]struct{}, len(readIDs))
	for _, id := range readIDs {
		read[id] = struct{}{}
	}
	candidateIDs := make([]uuid.UUID, 0, len(books))
	for _, b := range books {
		if _, ok := read[b.BookID]; !ok {
			candidateIDs = append(candidateIDs, b.BookID)
		}
	}
	if len(candidateIDs) == 0 {
		return nil, nil
	}

	available, unavailable, err := s.partitionCopies(tx, student.StudentAcademyID, candidateIDs)
	if err != nil {
		return nil, err
	}

	want := pkg.BookPkgCount
	if want < 1 {
		want = 1
	}

	// sample tanpa pengembalian dari partisi available
	s.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	take := want
	if take > len(available) {
		take = len(available)
	}

	out := make([]AllocatedCopy, 0, want)
	for _, inv := range available[:take] {
		out = append(out, AllocatedCopy{Inventory: inv, Available: true})
	}

	// kekurangan diisi dari partisi unavailable (selected but not bookable yet)
	if len(out) < want {
		s.rng.Shuffle(len(unavailable), func(i, j int) {
			unavailable[i], unavailable[j] = unavailable[j], unavailable[i]
		})
		for _, inv := range unavailable {
			if len(out) >= want {
				break
			}
			out = append(out, AllocatedCopy{Inventory: inv, Available: false})
		}
	}
	return out, nil
}

// partitionCopies membagi copy judul kandidat di satu akademi menjadi
// available / unavailable. Unavailable = sedang diklaim reservasi aktif atau
// rental yang belum kembali. Maksimal satu copy per judul di tiap partisi.
func (s *AllocatorService) partitionCopies(tx *gorm.DB, academyID uuid.UUID, bookIDs []uuid.UUID) (available, unavailable []bookModel.BookInventoryModel, err error) {
	var copies []bookModel.BookInventoryModel
	if err = tx.Preload("Book").
		Where("book_inventory_academy_id = ? AND book_inventory_book_id IN ? AND book_inventory_status = ?",
			academyID, bookIDs, bookModel.InventoryStatusNormal).
		Find(&copies).Error; err != nil {
		return nil, nil, err
	}
	if len(copies) == 0 {
		return nil, nil, nil
	}

	copyIDs := make([]uuid.UUID, len(copies))
	for i, cp := range copies {
		copyIDs[i] = cp.BookInventoryID
	}

	var reservedIDs []uuid.UUID
	if err = tx.Model(&reservationModel.BookReservationBookModel{}).
		Where("book_reservation_book_book_inventory_id IN ?", copyIDs).
		Pluck("book_reservation_book_book_inventory_id", &reservedIDs).Error; err != nil {
		return nil, nil, err
	}
	var rentedIDs []uuid.UUID
	if err = tx.Model(&rentalModel.BookRentalModel{}).
		Where("book_rental_book_inventory_id IN ? AND book_rental_returned_at IS NULL", copyIDs).
		Pluck("book_rental_book_inventory_id", &rentedIDs).Error; err != nil {
		return nil, nil, err
	}

	busy := make(map[uuid.UUID]struct{}, len(reservedIDs)+len(rentedIDs))
	for _, id := range reservedIDs {
		busy[id] = struct{}{}
	}
	for _, id := range rentedIDs {
		busy[id] = struct{}{}
	}

	seenAvail := make(map[uuid.UUID]struct{})
	seenBusy := make(map[uuid.UUID]struct{})
	for _, cp := range copies {
		if _, isBusy := busy[cp.BookInventoryID]; isBusy {
			if _, ok := seenBusy[cp.BookInventoryBookID]; ok {
				continue
			}
			seenBusy[cp.BookInventoryBookID] = struct{}{}
			unavailable = append(unavailable, cp)
		} else {
			if _, ok := seenAvail[cp.BookInventoryBookID]; ok {
				continue
			}
			seenAvail[cp.BookInventoryBookID] = struct{}{}
			available = append(available, cp)
		}
	}
	return available, unavailable, nil
}

/* =======================================================
   Rekomendasi end-to-end
======================================================= */

type RecommendResult struct {
	RecommendationID uuid.UUID       `json:"recommendation_id"`
	PkgName          string          `json:"pkg_name"`
	Phase            SelectionPhase  `json:"phase"`
	Performance      Performance     `json:"performance"`
	Items            []AllocatedCopy `json:"items"`
}

// Recommend: agregasi → seleksi dua fase → alokasi dengan retry antar paket
// → persist histori (judul terpilih dimemo). Satu transaksi penuh.
func (s *AllocatorService) Recommend(studentID uuid.UUID, fnf string, recordIDs []uuid.UUID) (*RecommendResult, error) {
	var result *RecommendResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var student userModel.StudentModel
		if err := tx.First(&student, "student_id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("student %s: %w", studentID, ErrNotFound)
			}
			return err
		}

		perf, err := s.AggregatePerformance(tx, &student, recordIDs)
		if err != nil {
			return err
		}

		candidates, phase, err := s.SelectPackages(tx, studentID, fnf, perf)
		if err != nil {
			return err
		}
		if phase == PhaseNone {
			return fmt.Errorf("tidak ada paket cocok pita skor: %w", ErrExhausted)
		}

		// pilih acak; paket tanpa kandidat copy dibuang lalu coba lagi
		for len(candidates) > 0 {
			i := s.rng.Intn(len(candidates))
			pkg := candidates[i]

			items, err := s.allocateFromPackage(tx, &student, &pkg)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				candidates = append(candidates[:i], candidates[i+1:]...)
				continue
			}

			// memo judul terpilih (level judul, bukan copy)
			selected := make([]uuid.UUID, 0, len(items))
			for _, it := range items {
				selected = append(selected, it.Inventory.BookInventoryBookID)
			}
			rec := recModel.RecommendationModel{
				RecommendationStudentID:     studentID,
				RecommendationFnf:           fnf,
				RecommendationPkgName:       pkg.BookPkgName,
				RecommendationSelectedBooks: selected,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}

			now := time.Now()
			if err := tx.Model(&userModel.StudentModel{}).
				Where("student_id = ?", studentID).
				Update("student_last_recommended_at", now).Error; err != nil {
				return err
			}

			result = &RecommendResult{
				RecommendationID: rec.RecommendationID,
				PkgName:          pkg.BookPkgName,
				Phase:            phase,
				Performance:      *perf,
				Items:            items,
			}
			return nil
		}
		return fmt.Errorf("semua paket kandidat tanpa copy: %w", ErrExhausted)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SelectedBooks: query ulang rekomendasi final terakhir — judul yang sama
// di-resolve ulang ke copy dengan availability terkini, tanpa roll baru.
func (s *AllocatorService) SelectedBooks(studentID uuid.UUID, fnf string) (*RecommendResult, error) {
	var student userModel.StudentModel
	if err := s.DB.First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %s: %w", studentID, ErrNotFound)
		}
		return nil, err
	}

	var rec recModel.RecommendationModel
	err := s.DB.Where("recommendation_student_id = ? AND recommendation_fnf = ?", studentID, fnf).
		Order("recommendation_created_at DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("belum ada rekomendasi: %w", ErrNotFound)
		}
		return nil, err
	}
	if len(rec.RecommendationSelectedBooks) == 0 {
		return nil, fmt.Errorf("rekomendasi tanpa judul terpilih: %w", ErrNotFound)
	}

	available, unavailable, err := s.partitionCopies(s.DB, student.StudentAcademyID, rec.RecommendationSelectedBooks)
	if err != nil {
		return nil, err
	}

	// satu entri per judul yang dimemo; availability mengikuti keadaan sekarang
	byBook := make(map[uuid.UUID]AllocatedCopy)
	for _, inv := range unavailable {
		byBook[inv.BookInventoryBookID] = AllocatedCopy{Inventory: inv, Available: false}
	}
	for _, inv := range available {
		byBook[inv.BookInventoryBookID] = AllocatedCopy{Inventory: inv, Available: true}
	}

	items := make([]AllocatedCopy, 0, len(rec.RecommendationSelectedBooks))
	for _, bookID := range rec.RecommendationSelectedBooks {
		if it, ok := byBook[bookID]; ok {
			items = append(items, it)
		}
	}

	return &RecommendResult{
		RecommendationID: rec.RecommendationID,
		PkgName:          rec.RecommendationPkgName,
		Phase:            PhaseFound,
		Items:            items,
	}, nil
}
