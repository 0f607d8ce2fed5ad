// file: internals/features/academy/lectures/service/expander_service.go
package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	lectureModel "academyku_backend/internals/features/academy/lectures/model"
	userService "academyku_backend/internals/features/academy/users/service"
)

var (
	ErrNotFound    = userService.ErrNotFound
	ErrInvalidRule = errors.New("aturan pengulangan tidak valid")
)

// ExpanderService: mesin expand template kuliah → pertemuan bertanggal.
type ExpanderService struct {
	DB       *gorm.DB
	Identity *userService.IdentityService
}

func NewExpanderService(db *gorm.DB) *ExpanderService {
	return &ExpanderService{
		DB:       db,
		Identity: userService.NewIdentityService(db),
	}
}

/* =======================================================
   Input create / regenerate
======================================================= */

type GenerateInput struct {
	AcademyID   uuid.UUID
	TeacherID   uuid.UUID
	AnchorDate  time.Time // tanggal pertemuan pertama (acuan walk mingguan)
	StartTime   string    // "15:04"
	EndTime     string
	Memo        string
	Description string
	RepeatDays  []int // 0=Senin .. 6=Minggu, atau [-1] sekali jalan
	RepeatWeeks int
	AutoAdd     bool
	StudentIDs  []uuid.UUID
}

/* =======================================================
   Weekday util — konvensi Senin=0 .. Minggu=6
======================================================= */

// weekdayMon0: time.Weekday (Minggu=0) → index Senin=0.
func weekdayMon0(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfMonth(t time.Time) time.Time {
	firstNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstNext.AddDate(0, 0, -1)
}

func validTimeOfDay(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func validateRule(repeatDays []int, repeatWeeks int, noRepeat bool) error {
	if noRepeat {
		return nil
	}
	if repeatWeeks < 1 {
		return fmt.Errorf("repeat_weeks minimal 1: %w", ErrInvalidRule)
	}
	if len(repeatDays) == 0 {
		return fmt.Errorf("repeat_days kosong: %w", ErrInvalidRule)
	}
	for _, d := range repeatDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("repeat_days berisi %d: %w", d, ErrInvalidRule)
		}
	}
	return nil
}

func isNoRepeat(repeatDays []int) bool {
	if len(repeatDays) == 0 {
		return true
	}
	for _, d := range repeatDays {
		if d == lectureModel.NoRepeatDay {
			return true
		}
	}
	return false
}

/* =======================================================
   Expand tanggal
======================================================= */

// expandDates menghitung semua tanggal pertemuan dari anchor + rule.
// Minggu pertama berjalan "dari anchor ke depan": bila weekday anchor ikut
// di rule, hari lain di minggu itu bisa jatuh SEBELUM anchor secara kalender.
// Perilaku ini dipertahankan apa adanya.
func expandDates(anchor time.Time, repeatDays []int, repeatWeeks int, autoAdd bool) []time.Time {
	anchor = dateOnly(anchor)

	if isNoRepeat(repeatDays) {
		return []time.Time{anchor}
	}

	anchorWD := weekdayMon0(anchor)
	seen := make(map[time.Time]struct{})
	var dates []time.Time

	add := func(d time.Time) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	for week := 0; week < repeatWeeks; week++ {
		for _, day := range repeatDays {
			if day < 0 || day > 6 {
				continue
			}
			offset := (day-anchorWD+7)%7 + week*7
			add(anchor.AddDate(0, 0, offset))
		}
	}

	// auto_add: lengkapi horizon 2 bulan (sisa bulan ini + seluruh bulan depan)
	if autoAdd {
		horizon := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 2, 0).AddDate(0, 0, -1)
		for d := anchor; !d.After(horizon); d = d.AddDate(0, 0, 1) {
			wd := weekdayMon0(d)
			for _, day := range repeatDays {
				if day == wd {
					add(d)
					break
				}
			}
		}
	}

	return dates
}

// expandDatesInWindow: semua tanggal matching rule dalam [from, to] inklusif.
// Dipakai job bulanan auto-extend.
func expandDatesInWindow(from, to time.Time, repeatDays []int) []time.Time {
	from, to = dateOnly(from), dateOnly(to)
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		wd := weekdayMon0(d)
		for _, day := range repeatDays {
			if day == wd {
				dates = append(dates, d)
				break
			}
		}
	}
	return dates
}

/* =======================================================
   Generate (create template + instances, satu transaksi)
======================================================= */

func (s *ExpanderService) Generate(in GenerateInput) (*lectureModel.LectureInfoModel, []lectureModel.LectureModel, error) {
	noRepeat := isNoRepeat(in.RepeatDays)
	if err := validateRule(in.RepeatDays, in.RepeatWeeks, noRepeat); err != nil {
		return nil, nil, err
	}
	if !validTimeOfDay(in.StartTime) || !validTimeOfDay(in.EndTime) {
		return nil, nil, fmt.Errorf("jam mulai/selesai harus HH:MM: %w", ErrInvalidRule)
	}

	var (
		info     lectureModel.LectureInfoModel
		lectures []lectureModel.LectureModel
	)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.Identity.ResolveAcademy(tx, in.AcademyID); err != nil {
			return err
		}
		if _, err := s.Identity.ResolveTeacher(tx, in.TeacherID); err != nil {
			return err
		}
		if _, err := s.Identity.ResolveStudents(tx, in.StudentIDs); err != nil {
			return err
		}

		repeatDays := in.RepeatDays
		if noRepeat {
			repeatDays = []int{lectureModel.NoRepeatDay}
		}
		repeatWeeks := in.RepeatWeeks
		if repeatWeeks < 1 {
			repeatWeeks = 1
		}

		info = lectureModel.LectureInfoModel{
			LectureInfoAcademyID:   in.AcademyID,
			LectureInfoTeacherID:   in.TeacherID,
			LectureInfoDescription: in.Description,
			LectureInfoRepeatDays:  repeatDays,
			LectureInfoRepeatWeeks: repeatWeeks,
			LectureInfoAutoAdd:     in.AutoAdd,
		}
		if err := tx.Create(&info).Error; err != nil {
			return err
		}

		created, err := s.createInstances(tx, &info, in.AnchorDate, in.StartTime, in.EndTime, in.Memo, in.StudentIDs, nil)
		if err != nil {
			return err
		}
		lectures = created
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &info, lectures, nil
}

// createInstances: buat LectureModel + roster untuk setiap tanggal hasil expand.
// onlyDates != nil → pakai daftar tanggal itu (dipakai job bulanan).
func (s *ExpanderService) createInstances(
	tx *gorm.DB,
	info *lectureModel.LectureInfoModel,
	anchor time.Time,
	startTime, endTime, memo string,
	studentIDs []uuid.UUID,
	onlyDates []time.Time,
) ([]lectureModel.LectureModel, error) {
	dates := onlyDates
	if dates == nil {
		dates = expandDates(anchor, info.LectureInfoRepeatDays, info.LectureInfoRepeatWeeks, info.LectureInfoAutoAdd)
	}

	lectures := make([]lectureModel.LectureModel, 0, len(dates))
	for _, d := range dates {
		lectures = append(lectures, lectureModel.LectureModel{
			LectureLectureInfoID: info.LectureInfoID,
			LectureAcademyID:     info.LectureInfoAcademyID,
			LectureTeacherID:     info.LectureInfoTeacherID,
			LectureDate:          d,
			LectureStartTime:     startTime,
			LectureEndTime:       endTime,
			LectureMemo:          memo,
		})
	}
	if len(lectures) == 0 {
		return nil, nil
	}
	if err := tx.CreateInBatches(&lectures, 100).Error; err != nil {
		return nil, err
	}

	if len(studentIDs) > 0 {
		roster := make([]lectureModel.LectureStudentModel, 0, len(lectures)*len(studentIDs))
		for _, lec := range lectures {
			for _, sid := range studentIDs {
				roster = append(roster, lectureModel.LectureStudentModel{
					LectureStudentLectureID: lec.LectureID,
					LectureStudentStudentID: sid,
				})
			}
		}
		if err := tx.CreateInBatches(&roster, 200).Error; err != nil {
			return nil, err
		}
	}
	return lectures, nil
}

/* =======================================================
   Regenerate (edit template → hapus masa depan, expand ulang)
======================================================= */

type RegenerateInput struct {
	LectureInfoID uuid.UUID
	EffectiveDate time.Time // instance bertanggal >= ini dihapus lalu dibuat ulang
	StartTime     string
	EndTime       string
	Memo          string
	Description   *string
	RepeatDays    []int
	RepeatWeeks   int
	AutoAdd       *bool
	StudentIDs    []uuid.UUID
}

func (s *ExpanderService) Regenerate(in RegenerateInput) (*lectureModel.LectureInfoModel, []lectureModel.LectureModel, error) {
	noRepeat := isNoRepeat(in.RepeatDays)
	if err := validateRule(in.RepeatDays, in.RepeatWeeks, noRepeat); err != nil {
		return nil, nil, err
	}
	if !validTimeOfDay(in.StartTime) || !validTimeOfDay(in.EndTime) {
		return nil, nil, fmt.Errorf("jam mulai/selesai harus HH:MM: %w", ErrInvalidRule)
	}

	var (
		info     lectureModel.LectureInfoModel
		lectures []lectureModel.LectureModel
	)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&info, "lecture_info_id = ?", in.LectureInfoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lecture info %s: %w", in.LectureInfoID, ErrNotFound)
			}
			return err
		}
		if _, err := s.Identity.ResolveStudents(tx, in.StudentIDs); err != nil {
			return err
		}

		effective := dateOnly(in.EffectiveDate)

		// hapus roster lalu instance yang >= effective; histori sebelum itu utuh
		var futureIDs []uuid.UUID
		if err := tx.Model(&lectureModel.LectureModel{}).
			Where("lecture_lecture_info_id = ? AND lecture_date >= ?", info.LectureInfoID, effective).
			Pluck("lecture_id", &futureIDs).Error; err != nil {
			return err
		}
		if len(futureIDs) > 0 {
			if err := tx.Where("lecture_student_lecture_id IN ?", futureIDs).
				Delete(&lectureModel.LectureStudentModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lecture_id IN ?", futureIDs).
				Delete(&lectureModel.LectureModel{}).Error; err != nil {
				return err
			}
		}

		// update rule di template
		repeatDays := in.RepeatDays
		if noRepeat {
			repeatDays = []int{lectureModel.NoRepeatDay}
		}
		repeatWeeks := in.RepeatWeeks
		if repeatWeeks < 1 {
			repeatWeeks = 1
		}
		info.LectureInfoRepeatDays = repeatDays
		info.LectureInfoRepeatWeeks = repeatWeeks
		if in.Description != nil {
			info.LectureInfoDescription = *in.Description
		}
		if in.AutoAdd != nil {
			info.LectureInfoAutoAdd = *in.AutoAdd
		}
		if err := tx.Save(&info).Error; err != nil {
			return err
		}

		created, err := s.createInstances(tx, &info, effective, in.StartTime, in.EndTime, in.Memo, in.StudentIDs, nil)
		if err != nil {
			return err
		}
		lectures = created
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &info, lectures, nil
}

/* =======================================================
   Delete (instance tunggal / template cascade, eksplisit)
======================================================= */

// DeleteLecture menghapus satu pertemuan; template ikut terhapus bila itu
// instance terakhirnya. Roster → instance → (template) dalam satu transaksi.
func (s *ExpanderService) DeleteLecture(lectureID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var lec lectureModel.LectureModel
		if err := tx.First(&lec, "lecture_id = ?", lectureID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lecture %s: %w", lectureID, ErrNotFound)
			}
			return err
		}

		if err := tx.Where("lecture_student_lecture_id = ?", lectureID).
			Delete(&lectureModel.LectureStudentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&lectureModel.LectureModel{}, "lecture_id = ?", lectureID).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&lectureModel.LectureModel{}).
			Where("lecture_lecture_info_id = ?", lec.LectureLectureInfoID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Delete(&lectureModel.LectureInfoModel{}, "lecture_info_id = ?", lec.LectureLectureInfoID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteLectureInfo: hapus template beserta seluruh instance dan rosternya.
func (s *ExpanderService) DeleteLectureInfo(infoID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var info lectureModel.LectureInfoModel
		if err := tx.First(&info, "lecture_info_id = ?", infoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lecture info %s: %w", infoID, ErrNotFound)
			}
			return err
		}

		var ids []uuid.UUID
		if err := tx.Model(&lectureModel.LectureModel{}).
			Where("lecture_lecture_info_id = ?", infoID).
			Pluck("lecture_id", &ids).Error; err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := tx.Where("lecture_student_lecture_id IN ?", ids).
				Delete(&lectureModel.LectureStudentModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("lecture_id IN ?", ids).
				Delete(&lectureModel.LectureModel{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&lectureModel.LectureInfoModel{}, "lecture_info_id = ?", infoID).Error
	})
}

/* =======================================================
   Job bulanan auto-extend
======================================================= */

// ExtendMonthly: untuk setiap template auto_add, pastikan dua bulan kalender
// penuh setelah bulan `now` sudah ter-materialisasi. Idempoten: bulan yang
// sudah punya instance untuk template itu dilewati, jadi rerun (termasuk
// restart aplikasi) tidak memperpanjang horizon melampaui now+2 bulan.
func (s *ExpanderService) ExtendMonthly(now time.Time) (int, error) {
	var infos []lectureModel.LectureInfoModel
	if err := s.DB.Where("lecture_info_auto_add = ?", true).Find(&infos).Error; err != nil {
		return 0, err
	}

	totalCreated := 0
	for i := range infos {
		n, err := s.extendOne(&infos[i], now)
		if err != nil {
			log.Printf("[AUTO-EXTEND] template %s gagal: %v", infos[i].LectureInfoID, err)
			continue
		}
		totalCreated += n
	}
	return totalCreated, nil
}

func (s *ExpanderService) extendOne(info *lectureModel.LectureInfoModel, now time.Time) (int, error) {
	if info.IsNoRepeat() {
		return 0, nil
	}

	created := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var latest lectureModel.LectureModel
		err := tx.Where("lecture_lecture_info_id = ?", info.LectureInfoID).
			Order("lecture_date DESC").
			First(&latest).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // template tanpa instance: tidak ada acuan, lewati
			}
			return err
		}

		// roster diambil dari instance terakhir
		var studentIDs []uuid.UUID
		if err := tx.Model(&lectureModel.LectureStudentModel{}).
			Where("lecture_student_lecture_id = ?", latest.LectureID).
			Pluck("lecture_student_student_id", &studentIDs).Error; err != nil {
			return err
		}

		// jendela dipatok ke `now`, bukan ke instance terakhir — instance
		// terakhir maju setiap kali job jalan, kalau dipakai sebagai acuan
		// tiap rerun akan menyasar dua bulan kosong yang baru
		base := dateOnly(now)
		for m := 1; m <= 2; m++ {
			monthStart := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, m, 0)
			monthEnd := endOfMonth(monthStart)

			// guard idempoten: sudah ada instance di bulan ini → lewati
			var exists int64
			if err := tx.Model(&lectureModel.LectureModel{}).
				Where("lecture_lecture_info_id = ? AND lecture_date >= ? AND lecture_date <= ?",
					info.LectureInfoID, monthStart, monthEnd).
				Count(&exists).Error; err != nil {
				return err
			}
			if exists > 0 {
				continue
			}

			dates := expandDatesInWindow(monthStart, monthEnd, info.RepeatDaySet())
			if len(dates) == 0 {
				continue
			}
			batch, err := s.createInstances(tx, info, monthStart,
				latest.LectureStartTime, latest.LectureEndTime, latest.LectureMemo,
				studentIDs, dates)
			if err != nil {
				return err
			}
			created += len(batch)
		}
		return nil
	})
	return created, err
}
