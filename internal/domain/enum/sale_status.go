package enum

// SaleStatus describes how much of a sale's total has been collected.
type SaleStatus string

const (
	SaleStatusPaid    SaleStatus = "paid"
	SaleStatusPartial SaleStatus = "partial"
	SaleStatusUnpaid  SaleStatus = "unpaid"
)

// IsValid checks whether the status is one of the known values
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPaid, SaleStatusPartial, SaleStatusUnpaid:
		return true
	}
	return false
}
