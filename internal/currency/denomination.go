package currency

// Kind distinguishes coins from notes.
type Kind string

const (
	KindCoin Kind = "coin"
	KindNote Kind = "note"
)

// Denomination is a single coin or note in the catalog.
type Denomination struct {
	ID     string  // e.g. "coin-50c", "note-5"
	Kind   Kind
	Value  float64 // face value in dollars
	Label  string  // display name, e.g. "50 cents"
	Symbol string  // short form shown on the coin face, e.g. "50c"
}

// IsCoin returns true for coin denominations.
func (d Denomination) IsCoin() bool {
	return d.Kind == KindCoin
}
