package currency

// catalog holds the denomination table with precomputed indices.
type catalog struct {
	ordered []Denomination
	byID    map[string]*Denomination
}

// c is the package-level catalog singleton, built by init().
var c *catalog

func init() {
	c = buildCatalog(seedDenominations())
}

// buildCatalog constructs the catalog and its ID index.
func buildCatalog(denoms []Denomination) *catalog {
	cat := &catalog{
		ordered: denoms,
		byID:    make(map[string]*Denomination, len(denoms)),
	}
	for i := range cat.ordered {
		cat.byID[cat.ordered[i].ID] = &cat.ordered[i]
	}
	return cat
}

// seedDenominations returns the Australian currency set in ascending
// value order. Values are exact in dollars; 1c and 2c coins were
// withdrawn from circulation and are not taught.
func seedDenominations() []Denomination {
	return []Denomination{
		{ID: "coin-5c", Kind: KindCoin, Value: 0.05, Label: "5 cents", Symbol: "5c"},
		{ID: "coin-10c", Kind: KindCoin, Value: 0.10, Label: "10 cents", Symbol: "10c"},
		{ID: "coin-20c", Kind: KindCoin, Value: 0.20, Label: "20 cents", Symbol: "20c"},
		{ID: "coin-50c", Kind: KindCoin, Value: 0.50, Label: "50 cents", Symbol: "50c"},
		{ID: "coin-1", Kind: KindCoin, Value: 1.00, Label: "1 dollar", Symbol: "$1"},
		{ID: "coin-2", Kind: KindCoin, Value: 2.00, Label: "2 dollars", Symbol: "$2"},
		{ID: "note-5", Kind: KindNote, Value: 5.00, Label: "5 dollars", Symbol: "$5"},
		{ID: "note-10", Kind: KindNote, Value: 10.00, Label: "10 dollars", Symbol: "$10"},
		{ID: "note-20", Kind: KindNote, Value: 20.00, Label: "20 dollars", Symbol: "$20"},
		{ID: "note-50", Kind: KindNote, Value: 50.00, Label: "50 dollars", Symbol: "$50"},
		{ID: "note-100", Kind: KindNote, Value: 100.00, Label: "100 dollars", Symbol: "$100"},
	}
}

// ByID looks up a denomination by its ID.
func ByID(id string) (Denomination, bool) {
	d, ok := c.byID[id]
	if !ok {
		return Denomination{}, false
	}
	return *d, true
}

// All returns every denomination in ascending value order.
func All() []Denomination {
	out := make([]Denomination, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Coins returns the coin subset in ascending value order.
func Coins() []Denomination {
	return filter(KindCoin)
}

// Notes returns the note subset in ascending value order.
func Notes() []Denomination {
	return filter(KindNote)
}

func filter(kind Kind) []Denomination {
	var out []Denomination
	for _, d := range c.ordered {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Sum totals the face values of the given denomination IDs. Unknown
// IDs contribute zero; the second return reports how many were unknown.
func Sum(ids []string) (float64, int) {
	var total float64
	unknown := 0
	for _, id := range ids {
		d, ok := c.byID[id]
		if !ok {
			unknown++
			continue
		}
		total += d.Value
	}
	return total, unknown
}
