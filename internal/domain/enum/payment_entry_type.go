package enum

// PaymentEntryType classifies a ledger entry. A charge records new debt
// created by a sale; a payment records money received against debt.
type PaymentEntryType string

const (
	PaymentEntryCharge  PaymentEntryType = "charge"
	PaymentEntryPayment PaymentEntryType = "payment"
)

// IsValid checks whether the entry type is one of the known values
func (t PaymentEntryType) IsValid() bool {
	return t == PaymentEntryCharge || t == PaymentEntryPayment
}
