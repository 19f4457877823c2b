package ports

import "time"

// Clock abstrae la hora actual para que los casos de uso sean deterministas
// en tests.
type Clock interface {
	Now() time.Time
}

// SystemClock implementación real de Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock devuelve siempre la misma hora (para tests).
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
