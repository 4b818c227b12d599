// Package ledger holds the in-memory list of transactions and derives the
// dashboard totals from it.
package ledger

import (
	"sync"
	"time"

	"accounting/internal/core"
)

// Store keeps transactions in insertion order. All mutation goes through
// Add, Update and Remove, which are the only places the sign rule is applied.
type Store struct {
	mu     sync.Mutex
	items  []core.Transaction
	nextID int64
	now    func() time.Time
}

type Option func(*Store)

// WithClock overrides the source of "today" for transaction dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSeed preloads the store. Ids are taken as given; new ids continue after
// the largest one.
func WithSeed(items []core.Transaction) Option {
	return func(s *Store) {
		s.items = append([]core.Transaction(nil), items...)
	}
}

func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	for _, t := range s.items {
		if t.ID > s.nextID {
			s.nextID = t.ID
		}
	}
	return s
}

// List returns a copy of the transactions in insertion order.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}

// Get returns the transaction with the given id.
func (s *Store) Get(id int64) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return core.Transaction{}, false
}

// Add appends a new transaction built from the draft and returns it.
func (s *Store) Add(d core.Draft) core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := s.build(s.nextID, d)
	s.items = append(s.items, t)
	return t
}

// Update replaces the transaction with the given id in place, keeping its id
// and position. It reports false and changes nothing if the id is unknown.
func (s *Store) Update(id int64, d core.Draft) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return core.Transaction{}, false
	}
	t := s.build(id, d)
	s.items[i] = t
	return t, true
}

// Remove deletes the transaction with the given id. It reports false if the
// id is unknown.
func (s *Store) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	return true
}

// Totals computes the aggregate figures from the current list.
func (s *Store) Totals() core.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.ComputeTotals(s.items)
}

// Len returns the number of transactions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) build(id int64, d core.Draft) core.Transaction {
	typ := core.ParseTransactionType(string(d.Type))
	return core.Transaction{
		ID:          id,
		Type:        typ,
		Description: d.Description,
		Category:    d.Category,
		Amount:      core.SignedAmount(typ, d.Amount),
		Date:        core.FormatDate(s.now()),
	}
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}
