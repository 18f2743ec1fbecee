package export

import (
	"fmt"
	"strings"
)

// Text renders the estimate as the plain-text body used for email.
func Text(doc Document) string {
	var b strings.Builder

	fmt.Fprintln(&b, doc.Title)
	if doc.EstimateID != "" {
		fmt.Fprintf(&b, "Estimate ID: %s\n", doc.EstimateID)
	}
	if doc.Date != "" {
		fmt.Fprintf(&b, "Date: %s\n", doc.Date)
	}
	b.WriteString("\n")

	c := doc.Contact
	for _, field := range []struct{ label, value string }{
		{"Customer", c.FullName},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Address", c.Address},
	} {
		if field.value != "" {
			fmt.Fprintf(&b, "%s: %s\n", field.label, field.value)
		}
	}

	for _, r := range doc.Rooms {
		fmt.Fprintf(&b, "\nRoom %d: %s (%s)\n", r.Number, r.Name, Money(r.Price))
		if r.Description != "" {
			fmt.Fprintf(&b, "  %s\n", r.Description)
		}
		for _, l := range r.Lines {
			fmt.Fprintf(&b, "  %s: %s\n", l.Label, SignedMoney(l.Amount))
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", Money(doc.Subtotal))
	if doc.VolumeDiscount != 0 {
		fmt.Fprintf(&b, "Volume discount (%s): %s\n", percent(doc.DiscountPercent), Money(-doc.VolumeDiscount))
	}
	fmt.Fprintf(&b, "Total: %s\n", Money(doc.Total))
	return b.String()
}
