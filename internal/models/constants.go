package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// ValidBookingStatus reports whether s is one of the backend booking states.
func ValidBookingStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

const (
	// DefaultFlowTTL время жизни состояния диалога
	DefaultFlowTTL = 24 * 60 * 60 // 24 часа в секундах

	// DefaultPaginationSize размер пагинации по умолчанию
	DefaultPaginationSize = 8

	// RateLimitCommands количество команд в окне
	RateLimitCommands = 20

	// RateLimitWindow окно ограничения частоты команд
	RateLimitWindow = 60 // 1 минута в секундах

	// DefaultPollIntervalSeconds период фонового обновления уведомлений
	DefaultPollIntervalSeconds = 60
)
