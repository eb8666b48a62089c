package discussions

import "time"

// Временные пороги вокруг начала обсуждения. Запись закрывается за 10 минут
// до старта, ссылка на встречу выдается за 5 минут до старта.
const (
	JoinCutoff    = 10 * time.Minute
	AccessOpening = 5 * time.Minute
)

// Фазы комнаты, выводятся только из текущего времени
const (
	PhaseJoinable   = "joinable"
	PhaseJoinClosed = "join_closed"
	PhaseAccessible = "accessible"
)

// Причины отказа в записи
const (
	ReasonAlreadyJoined = "already_joined"
	ReasonClosed        = "closed"
	ReasonFull          = "full"
)

// JoinAllowed — запись разрешена строго раньше, чем startTime − 10 минут.
// Ровно на границе запись уже закрыта.
func JoinAllowed(now, startTime time.Time) bool {
	return now.Before(startTime.Add(-JoinCutoff))
}

// AccessAllowed — ссылка доступна начиная ровно с startTime − 5 минут
func AccessAllowed(now, startTime time.Time) bool {
	return !now.Before(startTime.Add(-AccessOpening))
}

// JoinDecision — решение о записи участника: дубликаты отклоняются,
// затем проверяется окно записи, затем вместимость
func JoinDecision(now, startTime time.Time, attendees, capacity int, alreadyJoined bool) (bool, string) {
	if alreadyJoined {
		return false, ReasonAlreadyJoined
	}
	if !JoinAllowed(now, startTime) {
		return false, ReasonClosed
	}
	if attendees >= capacity {
		return false, ReasonFull
	}
	return true, ""
}

// PhaseAt — фаза комнаты в момент now
func PhaseAt(now, startTime time.Time) string {
	switch {
	case JoinAllowed(now, startTime):
		return PhaseJoinable
	case AccessAllowed(now, startTime):
		return PhaseAccessible
	default:
		return PhaseJoinClosed
	}
}
