// file: internals/features/academy/lectures/scheduler/notifier.go
package scheduler

import (
	"log"

	"github.com/google/uuid"
)

// Notifier: sink pesan ke kanal eksternal (push/websocket di layanan lain).
// Core hanya menyerahkan daftar siswa + nama kanal.
type Notifier interface {
	Notify(channel string, studentIDs []uuid.UUID, message string) error
}

// LogNotifier: implementasi default, cukup tulis ke log.
type LogNotifier struct{}

func NewLogNotifier() Notifier { return &LogNotifier{} }

func (LogNotifier) Notify(channel string, studentIDs []uuid.UUID, message string) error {
	log.Printf("[NOTIFY] channel=%s students=%d msg=%s", channel, len(studentIDs), message)
	return nil
}
