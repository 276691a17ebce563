package billing

// BillStatus represents the lifecycle status of a bill
type BillStatus string

const (
	BillStatusDraft   BillStatus = "draft"
	BillStatusIssued  BillStatus = "issued"
	BillStatusPartial BillStatus = "partial"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

// IsValid checks if the status is a known value
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusDraft, BillStatusIssued, BillStatusPartial, BillStatusPaid, BillStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation
func (s BillStatus) String() string {
	return string(s)
}

// Label returns a human-readable label for the status
func (s BillStatus) Label() string {
	switch s {
	case BillStatusDraft:
		return "Draft"
	case BillStatusIssued:
		return "Issued"
	case BillStatusPartial:
		return "Partially Paid"
	case BillStatusPaid:
		return "Paid"
	case BillStatusOverdue:
		return "Overdue"
	default:
		return string(s)
	}
}

// IsClosed returns true when no further payments are expected
func (s BillStatus) IsClosed() bool {
	return s == BillStatusPaid
}

// ShareStatus represents the payment status of a resident's share
type ShareStatus string

const (
	ShareStatusPending ShareStatus = "pending"
	ShareStatusPartial ShareStatus = "partial"
	ShareStatusPaid    ShareStatus = "paid"
)

// IsValid checks if the status is a known value
func (s ShareStatus) IsValid() bool {
	switch s {
	case ShareStatusPending, ShareStatusPartial, ShareStatusPaid:
		return true
	}
	return false
}

// String returns the string representation
func (s ShareStatus) String() string {
	return string(s)
}

// Label returns a human-readable label for the status
func (s ShareStatus) Label() string {
	switch s {
	case ShareStatusPending:
		return "Pending"
	case ShareStatusPartial:
		return "Partially Paid"
	case ShareStatusPaid:
		return "Paid"
	default:
		return string(s)
	}
}
