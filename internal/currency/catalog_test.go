package currency

import (
	"math"
	"testing"
)

func TestByID_Found(t *testing.T) {
	d, ok := ByID("coin-50c")
	if !ok {
		t.Fatal("expected coin-50c to exist")
	}
	if d.Value != 0.50 {
		t.Errorf("Value = %f, want 0.50", d.Value)
	}
	if d.Kind != KindCoin {
		t.Errorf("Kind = %q, want coin", d.Kind)
	}
}

func TestByID_NotFound(t *testing.T) {
	_, ok := ByID("coin-3c")
	if ok {
		t.Error("expected lookup miss for coin-3c")
	}
}

func TestAll_AscendingOrder(t *testing.T) {
	all := All()
	if len(all) != 11 {
		t.Fatalf("len(All()) = %d, want 11", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Value <= all[i-1].Value {
			t.Errorf("All()[%d].Value = %f not greater than previous %f", i, all[i].Value, all[i-1].Value)
		}
	}
}

func TestCoinsAndNotes(t *testing.T) {
	coins := Coins()
	notes := Notes()
	if len(coins) != 6 {
		t.Errorf("len(Coins()) = %d, want 6", len(coins))
	}
	if len(notes) != 5 {
		t.Errorf("len(Notes()) = %d, want 5", len(notes))
	}
	for _, d := range coins {
		if d.Kind != KindCoin {
			t.Errorf("Coins() contains %q with kind %q", d.ID, d.Kind)
		}
	}
	for _, d := range notes {
		if d.Kind != KindNote {
			t.Errorf("Notes() contains %q with kind %q", d.ID, d.Kind)
		}
	}
}

func TestSum(t *testing.T) {
	total, unknown := Sum([]string{"coin-50c", "coin-50c", "coin-20c"})
	if unknown != 0 {
		t.Errorf("unknown = %d, want 0", unknown)
	}
	if math.Abs(total-1.20) > 1e-9 {
		t.Errorf("total = %f, want 1.20", total)
	}
}

func TestSum_UnknownIDs(t *testing.T) {
	total, unknown := Sum([]string{"coin-1", "bottle-cap"})
	if unknown != 1 {
		t.Errorf("unknown = %d, want 1", unknown)
	}
	if math.Abs(total-1.00) > 1e-9 {
		t.Errorf("total = %f, want 1.00", total)
	}
}
