// Package fechas agrupa la aritmética de fechas del negocio: el taller
// trabaja de lunes a viernes, así que las estimaciones de fabricación se
// calculan en días hábiles.
package fechas

import "time"

// IsBusinessDay indica si la fecha cae en día hábil (lunes a viernes).
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// AddBusinessDays suma n días hábiles a partir de from, saltando fines de
// semana. Con n <= 0 devuelve from sin cambios.
func AddBusinessDays(from time.Time, n int) time.Time {
	t := from
	for added := 0; added < n; {
		t = t.AddDate(0, 0, 1)
		if IsBusinessDay(t) {
			added++
		}
	}
	return t
}

// NextBusinessDay devuelve el siguiente día hábil estrictamente posterior a t.
func NextBusinessDay(t time.Time) time.Time {
	return AddBusinessDays(t, 1)
}
