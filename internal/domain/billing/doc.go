// Package billing provides the domain model for splitting household
// utility bills among residents.
//
// Key Aggregates:
//   - Bill: The monthly billing record, owning line items and totals
//   - BillShare: One resident's slice of a bill with its running paid total
//
// Entities:
//   - Payment: Immutable ledger entry against a share
//   - BillingSetting: Default charge template applied to new bills
//   - ElectricityReading: Monthly meter reading used to derive the
//     electricity charge
//
// Derived state (share statuses, bill status, final totals) is
// recomputed from the ledger rather than edited in place; see
// reconcile.go for the rules.
package billing
