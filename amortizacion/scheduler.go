package amortizacion

import (
	"time"

	"github.com/shopspring/decimal"

	"inmobiliaria-api/models"
)

// fechaFormato is the plain-date layout used for pago.fecha_pago.
const fechaFormato = "2006-01-02"

// Mensualidad computes the fixed monthly installment:
// (precioTotal - enganche) / plazoMeses, rounded to 2 decimals.
// Every installment in the schedule carries this same amount; the last
// payment is NOT adjusted to absorb rounding drift, so the schedule sum
// can differ from the financed amount by up to one cent per installment.
func Mensualidad(precioTotal, enganche decimal.Decimal, plazoMeses int) decimal.Decimal {
	return precioTotal.Sub(enganche).Div(decimal.NewFromInt(int64(plazoMeses))).Round(2)
}

// AddMonthsPreserveDay advances t by the given number of calendar months,
// keeping the day-of-month. When the target month is shorter than the
// original day, the result clamps to the last day of that month
// (Jan 31 + 1 month = Feb 28/29, never Mar 3).
func AddMonthsPreserveDay(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// Schedule generates the installment rows for a contract: plazoMeses
// payments of mensualidad each, numbered 1..plazoMeses, due one calendar
// month apart starting one month after inicio. Pure computation, no I/O;
// the slice order is the sequence-number order expected by the bulk insert.
func Schedule(idContrato int64, inicio time.Time, plazoMeses int, mensualidad decimal.Decimal) []models.Pago {
	pagos := make([]models.Pago, 0, plazoMeses)
	for i := 1; i <= plazoMeses; i++ {
		fecha := AddMonthsPreserveDay(inicio, i)
		pagos = append(pagos, models.Pago{
			IDContrato: idContrato,
			NumeroPago: i,
			Monto:      mensualidad,
			FechaPago:  fecha.Format(fechaFormato),
			MetodoPago: models.MetodoPagoPendiente,
			EstadoPago: models.EstadoPagoPendiente,
		})
	}
	return pagos
}
