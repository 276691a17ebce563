package notifier

import (
	"fmt"
	"strings"

	appbilling "github.com/housebill/backend/internal/application/billing"
	"github.com/housebill/backend/internal/domain/billing"
	"github.com/housebill/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// groupedAmount renders a decimal with two fraction digits and
// thousands separators, e.g. 12345.5 -> "12,345.50".
func groupedAmount(d decimal.Decimal) string {
	return valueobject.NewMoneyBDT(d).GroupedString()
}

// money renders an amount with the currency symbol and a space, the
// long display form used outside itemized breakdowns.
func money(symbol string, d decimal.Decimal) string {
	return symbol + " " + groupedAmount(d)
}

func ucfirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BillIssuedMessage builds the HTML announcement sent to one
// shareholder when a bill is created. The share section reflects that
// resident's own allocation.
func BillIssuedMessage(bill *billing.Bill, share *billing.BillShare, symbol string) string {
	var b strings.Builder

	b.WriteString("📋 <b>New Bill Created</b>\n\n")
	fmt.Fprintf(&b, "📅 <b>Month:</b> %s\n", bill.ForMonth)
	fmt.Fprintf(&b, "🔖 <b>Reference:</b> %s\n", bill.Reference)

	if bill.DueDate != nil {
		fmt.Fprintf(&b, "⏰ <b>Due Date:</b> %s\n", bill.DueDate.Format("2006-01-02"))
	}
	if bill.PeriodStart != nil && bill.PeriodEnd != nil {
		fmt.Fprintf(&b, "📆 <b>Period:</b> %s to %s\n",
			bill.PeriodStart.Format("2006-01-02"), bill.PeriodEnd.Format("2006-01-02"))
	}

	b.WriteString("\n💰 <b>Breakdown:</b>\n")
	for _, item := range bill.LineItems {
		label := item.Label
		if label == "" {
			label = item.Key
		}
		fmt.Fprintf(&b, "  • %s: %s%s\n", label, symbol, groupedAmount(item.Amount))
	}

	if bill.ElectricityUnits.IsPositive() {
		b.WriteString("\n⚡ <b>Electricity:</b>\n")
		if bill.ElectricityStartUnit != nil && bill.ElectricityEndUnit != nil {
			fmt.Fprintf(&b, "  • Start Unit: %s\n", bill.ElectricityStartUnit.String())
			fmt.Fprintf(&b, "  • End Unit: %s\n", bill.ElectricityEndUnit.String())
		}
		fmt.Fprintf(&b, "  • Units Used: %s\n", bill.ElectricityUnits.String())
		if bill.ElectricityRate.IsPositive() {
			fmt.Fprintf(&b, "  • Rate: %s%s per unit\n", symbol, groupedAmount(bill.ElectricityRate))
		}
		fmt.Fprintf(&b, "  • Amount: %s%s\n", symbol, groupedAmount(bill.ElectricityBill))
	}

	if share != nil {
		b.WriteString("\n👥 <b>Your Share:</b>\n")
		fmt.Fprintf(&b, "  • Amount Due: %s%s\n", symbol, groupedAmount(share.AmountDue))
		if share.AmountPaid.IsPositive() {
			fmt.Fprintf(&b, "  • Amount Paid: %s%s\n", symbol, groupedAmount(share.AmountPaid))
			if outstanding := share.Outstanding(); outstanding.IsPositive() {
				fmt.Fprintf(&b, "  • Outstanding: %s%s\n", symbol, groupedAmount(outstanding))
			}
		}
	}

	if bill.Notes != "" {
		fmt.Fprintf(&b, "\n📝 <b>Notes:</b> %s\n", bill.Notes)
	}

	b.WriteString("\n✅ Bill created successfully!")
	return b.String()
}

// PaymentReceivedMessage builds the confirmation sent to a resident
// after one of their payments is recorded.
func PaymentReceivedMessage(bill *billing.Bill, share *billing.BillShare, payment *billing.Payment, symbol string) string {
	var b strings.Builder

	b.WriteString("✅ <b>Payment Received</b>\n\n")
	fmt.Fprintf(&b, "Amount: %s\n", money(symbol, payment.Amount))
	fmt.Fprintf(&b, "Date: %s\n", payment.PaidOn.Format("2006-01-02"))
	fmt.Fprintf(&b, "Method: %s\n", ucfirst(payment.Method))
	fmt.Fprintf(&b, "Bill: %s\n", bill.Reference)
	fmt.Fprintf(&b, "Month: %s\n\n", bill.ForMonth)

	if outstanding := share.Outstanding(); outstanding.IsPositive() {
		fmt.Fprintf(&b, "Outstanding: %s\n", money(symbol, outstanding))
	} else {
		b.WriteString("✅ Bill fully paid!\n")
	}

	return b.String()
}

// DueReminderMessage builds the monthly digest of everything a
// resident still owes across open bills.
func DueReminderMessage(pending []appbilling.PendingShare, symbol string) string {
	var b strings.Builder

	b.WriteString("⏰ <b>Monthly Due Reminder</b>\n\n")
	b.WriteString("You have pending bills:\n\n")

	totalPending := decimal.Zero
	for _, p := range pending {
		outstanding := p.Share.Outstanding()
		totalPending = totalPending.Add(outstanding)

		fmt.Fprintf(&b, "📋 %s - %s\n", p.Bill.ForMonth, p.Bill.Reference)
		fmt.Fprintf(&b, "   Due: %s\n", money(symbol, p.Share.AmountDue))
		fmt.Fprintf(&b, "   Paid: %s\n", money(symbol, p.Share.AmountPaid))
		fmt.Fprintf(&b, "   Pending: %s\n", money(symbol, outstanding))
		if p.Bill.DueDate != nil {
			fmt.Fprintf(&b, "   Due Date: %s\n", p.Bill.DueDate.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "💰 <b>Total Pending: %s</b>\n\n", money(symbol, totalPending))
	b.WriteString("Please make your payment soon.")
	return b.String()
}
