// file: internals/features/academy/lectures/scheduler/lecture_check.go
package scheduler

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academyku_backend/internals/configs"
	attendanceModel "academyku_backend/internals/features/academy/attendance/model"
	lectureModel "academyku_backend/internals/features/academy/lectures/model"
)

// StartLectureCheckScheduler membandingkan jam mulai/selesai pertemuan hari
// ini dengan jam sekarang, lalu mendorong siswa yang belum absen / belum
// pulang ke Notifier. Interval via LECTURE_CHECK_INTERVAL_MINUTES (default 5).
func StartLectureCheckScheduler(db *gorm.DB, notifier Notifier) {
	go func() {
		minutes := configs.GetEnvInt("LECTURE_CHECK_INTERVAL_MINUTES", 5)
		if minutes < 1 {
			minutes = 5
		}
		ticker := time.NewTicker(time.Duration(minutes) * time.Minute)
		defer ticker.Stop()
		for {
			checkLectures(db, notifier)
			<-ticker.C
		}
	}()
}

func checkLectures(db *gorm.DB, notifier Notifier) {
	loc := configs.Location()
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	nowHM := now.Format("15:04")

	var lectures []lectureModel.LectureModel
	if err := db.Preload("Students").
		Where("lecture_date = ?", today).
		Find(&lectures).Error; err != nil {
		log.Printf("[LECTURE-CHECK] query error: %v", err)
		return
	}

	for i := range lectures {
		lec := &lectures[i]

		// sudah mulai: roster tanpa record absensi → kandidat "absent"
		if lec.LectureStartTime <= nowHM && nowHM < lec.LectureEndTime {
			missing, err := studentsWithoutAttendance(db, lec)
			if err != nil {
				log.Printf("[LECTURE-CHECK] %s: %v", lec.LectureID, err)
				continue
			}
			if len(missing) > 0 {
				_ = notifier.Notify("attendance-missing", missing, "Pertemuan sudah dimulai, absensi belum tercatat")
			}
		}

		// sudah selesai: masih checked_in (belum keluar) → kandidat follow-up
		if nowHM >= lec.LectureEndTime {
			lingering, err := studentsStillCheckedIn(db, lec)
			if err != nil {
				log.Printf("[LECTURE-CHECK] %s: %v", lec.LectureID, err)
				continue
			}
			if len(lingering) > 0 {
				_ = notifier.Notify("attendance-incomplete", lingering, "Pertemuan selesai, absensi keluar belum tercatat")
			}
		}
	}
}

func studentsWithoutAttendance(db *gorm.DB, lec *lectureModel.LectureModel) ([]uuid.UUID, error) {
	var recorded []uuid.UUID
	if err := db.Model(&attendanceModel.AttendanceModel{}).
		Where("attendance_lecture_id = ?", lec.LectureID).
		Pluck("attendance_student_id", &recorded).Error; err != nil {
		return nil, err
	}
	have := make(map[uuid.UUID]struct{}, len(recorded))
	for _, id := range recorded {
		have[id] = struct{}{}
	}
	var missing []uuid.UUID
	for _, rs := range lec.Students {
		if _, ok := have[rs.LectureStudentStudentID]; !ok {
			missing = append(missing, rs.LectureStudentStudentID)
		}
	}
	return missing, nil
}

func studentsStillCheckedIn(db *gorm.DB, lec *lectureModel.LectureModel) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&attendanceModel.AttendanceModel{}).
		Where("attendance_lecture_id = ? AND attendance_status = ?", lec.LectureID, attendanceModel.AttendanceStatusCheckedIn).
		Pluck("attendance_student_id", &ids).Error
	return ids, err
}
