package ledger

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"accounting/internal/core"
)

var fixedNow = time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)

func newSeeded() *Store {
	return New(WithSeed(DemoTransactions()), WithClock(func() time.Time { return fixedNow }))
}

func money(units int64) core.Money { return core.Money{Cents: units * 100} }

func TestSeedTotals(t *testing.T) {
	s := newSeeded()
	got := s.Totals()
	want := core.Totals{
		TotalIncome:   money(1550),
		TotalExpenses: money(950),
		NetProfit:     money(600),
		Count:         4,
	}
	if got != want {
		t.Fatalf("totals = %+v, want %+v", got, want)
	}
}

func TestAddExpense(t *testing.T) {
	s := newSeeded()
	before := s.List()
	netBefore := s.Totals().NetProfit

	tx := s.Add(core.Draft{Type: core.Expense, Description: "Internet", Category: "Operating", Amount: money(60)})

	if tx.Amount != money(-60) {
		t.Fatalf("expected amount -60, got %d cents", tx.Amount.Cents)
	}
	if tx.Date != "2026-10-16" {
		t.Fatalf("expected today's date, got %q", tx.Date)
	}
	totals := s.Totals()
	if totals.Count != 5 {
		t.Fatalf("expected 5 transactions, got %d", totals.Count)
	}
	if totals.NetProfit.Cents != netBefore.Cents-6000 {
		t.Fatalf("expected net profit to drop by 60, got %d", totals.NetProfit.Cents)
	}
	after := s.List()
	if !reflect.DeepEqual(after[:4], before) {
		t.Fatalf("existing entries changed: %+v", after[:4])
	}
	if after[4] != tx {
		t.Fatalf("new entry not appended last: %+v", after[4])
	}
}

func TestAddIgnoresEnteredSign(t *testing.T) {
	s := New()
	in := s.Add(core.Draft{Type: core.Income, Amount: money(-10)})
	out := s.Add(core.Draft{Type: core.Expense, Amount: money(-10)})
	if in.Amount != money(10) || out.Amount != money(-10) {
		t.Fatalf("sign not derived from type: income=%d expense=%d", in.Amount.Cents, out.Amount.Cents)
	}
}

func TestIDsUniqueUnderRapidAdds(t *testing.T) {
	s := newSeeded()
	seen := map[int64]bool{}
	for _, tx := range s.List() {
		seen[tx.ID] = true
	}
	for i := 0; i < 1000; i++ {
		tx := s.Add(core.NewDraft())
		if seen[tx.ID] {
			t.Fatalf("duplicate id %d", tx.ID)
		}
		seen[tx.ID] = true
	}
}

func TestIDsNotReusedAfterRemove(t *testing.T) {
	s := newSeeded()
	a := s.Add(core.NewDraft())
	s.Remove(a.ID)
	b := s.Add(core.NewDraft())
	if b.ID == a.ID {
		t.Fatalf("id %d reused after removal", a.ID)
	}
}

func TestUpdateKeepsIDAndPosition(t *testing.T) {
	s := newSeeded()
	before := s.List()

	tx, ok := s.Update(1, core.Draft{Type: core.Expense, Description: "Refund", Category: "Revenue", Amount: money(200)})
	if !ok {
		t.Fatal("expected update to succeed")
	}
	if tx.ID != 1 || tx.Amount != money(-200) || tx.Description != "Refund" {
		t.Fatalf("unexpected updated entry: %+v", tx)
	}

	after := s.List()
	if after[0] != tx {
		t.Fatalf("entry moved: %+v", after)
	}
	if !reflect.DeepEqual(after[1:], before[1:]) {
		t.Fatalf("other entries changed")
	}

	totals := s.Totals()
	if totals.TotalIncome != money(350) || totals.TotalExpenses != money(1150) || totals.NetProfit != money(-800) {
		t.Fatalf("totals not recomputed: %+v", totals)
	}
}

func TestUpdateUnknownIsNoop(t *testing.T) {
	s := newSeeded()
	before := s.List()
	if _, ok := s.Update(99, core.Draft{Type: core.Income, Amount: money(1)}); ok {
		t.Fatal("expected update of unknown id to report false")
	}
	if !reflect.DeepEqual(s.List(), before) {
		t.Fatal("list changed on unknown update")
	}
}

func TestRemove(t *testing.T) {
	s := newSeeded()
	before := s.List()
	if !s.Remove(2) {
		t.Fatal("expected remove to succeed")
	}
	after := s.List()
	want := []core.Transaction{before[0], before[2], before[3]}
	if !reflect.DeepEqual(after, want) {
		t.Fatalf("unexpected list after remove: %+v", after)
	}
	if s.Remove(2) {
		t.Fatal("expected second remove to be a no-op")
	}
	if _, ok := s.Get(2); ok {
		t.Fatal("removed entry still retrievable")
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := newSeeded()
	items := s.List()
	items[0].Description = "mutated"
	if got, _ := s.Get(1); got.Description != "Product Sale" {
		t.Fatalf("store mutated through List result: %q", got.Description)
	}
}

func TestTotalsInvariantOverRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := newSeeded()
	for i := 0; i < 500; i++ {
		typ := core.Income
		if rng.Intn(2) == 0 {
			typ = core.Expense
		}
		d := core.Draft{Type: typ, Amount: core.Money{Cents: rng.Int63n(1_000_000) - 500_000}}

		items := s.List()
		switch op := rng.Intn(3); {
		case op == 0 || len(items) == 0:
			tx := s.Add(d)
			checkSign(t, tx)
		case op == 1:
			target := items[rng.Intn(len(items))]
			tx, ok := s.Update(target.ID, d)
			if !ok {
				t.Fatalf("update of existing id %d failed", target.ID)
			}
			checkSign(t, tx)
		default:
			target := items[rng.Intn(len(items))]
			s.Remove(target.ID)
		}

		totals := s.Totals()
		if totals.TotalIncome.Cents-totals.TotalExpenses.Cents != totals.NetProfit.Cents {
			t.Fatalf("step %d: income - expenses != net profit: %+v", i, totals)
		}
		if totals.Count != s.Len() {
			t.Fatalf("step %d: count %d != len %d", i, totals.Count, s.Len())
		}
	}
}

func checkSign(t *testing.T, tx core.Transaction) {
	t.Helper()
	if tx.Type == core.Income && tx.Amount.Cents < 0 {
		t.Fatalf("income with negative amount: %+v", tx)
	}
	if tx.Type == core.Expense && tx.Amount.Cents > 0 {
		t.Fatalf("expense with positive amount: %+v", tx)
	}
}
