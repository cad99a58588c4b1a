package payroll

// Semua nilai uang dalam satuan terkecil (sen), sehingga penjumlahan tidak
// pernah kena floating error. Konversi ke format tampilan urusan client.

// OvertimeAmount is hours times the hourly overtime rate. Callers are
// responsible for rejecting negative inputs before computing.
func OvertimeAmount(hours, rate int64) int64 {
	return hours * rate
}

// GrossPay is base salary plus overtime amount plus bonuses.
func GrossPay(base, overtimeAmount, bonuses int64) int64 {
	return base + overtimeAmount + bonuses
}

// NetPay is gross minus deductions. A negative result is a valid state:
// deductions can exceed gross and the operator decides what to do with it.
func NetPay(gross, deductions int64) int64 {
	return gross - deductions
}
