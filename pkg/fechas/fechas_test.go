package fechas_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/decortina/ventas-api/pkg/fechas"
)

func date(d int) time.Time {
	// junio 2025: el día 2 es lunes, 7 sábado, 8 domingo.
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, fechas.IsBusinessDay(date(2)), "lunes es hábil")
	assert.True(t, fechas.IsBusinessDay(date(6)), "viernes es hábil")
	assert.False(t, fechas.IsBusinessDay(date(7)), "sábado no es hábil")
	assert.False(t, fechas.IsBusinessDay(date(8)), "domingo no es hábil")
}

func TestAddBusinessDays_DentroDeLaSemana(t *testing.T) {
	assert.Equal(t, date(5), fechas.AddBusinessDays(date(2), 3))
}

func TestAddBusinessDays_SaltaFinDeSemana(t *testing.T) {
	// viernes 6 + 1 hábil = lunes 9
	assert.Equal(t, date(9), fechas.AddBusinessDays(date(6), 1))
}

func TestAddBusinessDays_QuinceDias(t *testing.T) {
	// 15 hábiles desde el lunes 2 = lunes 23 (tres semanas completas)
	assert.Equal(t, date(23), fechas.AddBusinessDays(date(2), 15))
}

func TestAddBusinessDays_DesdeFinDeSemana(t *testing.T) {
	// sábado 7 + 1 hábil = lunes 9
	assert.Equal(t, date(9), fechas.AddBusinessDays(date(7), 1))
}

func TestAddBusinessDays_CeroDevuelveLaMismaFecha(t *testing.T) {
	assert.Equal(t, date(2), fechas.AddBusinessDays(date(2), 0))
}

func TestNextBusinessDay(t *testing.T) {
	assert.Equal(t, date(3), fechas.NextBusinessDay(date(2)))
	assert.Equal(t, date(9), fechas.NextBusinessDay(date(6)), "el siguiente hábil de viernes es lunes")
}
