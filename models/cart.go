package models

// CartLine is one product entry in a cart. A cart holds at most one line per
// product id; quantity is always >= 1.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// CountLines sums the quantities of a line sequence.
func CountLines(lines []CartLine) int {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}

// TotalAmount sums unit price times quantity over a line sequence.
func TotalAmount(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// CloneLines copies a line sequence so callers cannot alias cart state.
func CloneLines(lines []CartLine) []CartLine {
	if len(lines) == 0 {
		return []CartLine{}
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
