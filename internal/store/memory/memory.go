// Package memory is the in-process store used by tests and the dev
// backend. All methods are safe for concurrent use.
package memory

import (
	"context"
	"sort"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

type goalKey struct {
	category core.Category
	year     int
	month    int
}

type principalData struct {
	transactions map[string]core.Transaction
	cards        map[string]core.CreditCard
	items        map[string]core.BalanceSheetItem
	goals        map[goalKey]core.BudgetGoal
}

type Store struct {
	mu   sync.RWMutex
	data map[store.Principal]*principalData
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{data: map[store.Principal]*principalData{}}
}

// owner returns the principal's bucket, creating it on first write.
func (s *Store) owner(p store.Principal) *principalData {
	d, ok := s.data[p]
	if !ok {
		d = &principalData{
			transactions: map[string]core.Transaction{},
			cards:        map[string]core.CreditCard{},
			items:        map[string]core.BalanceSheetItem{},
			goals:        map[goalKey]core.BudgetGoal{},
		}
		s.data[p] = d
	}
	return d
}

func (s *Store) CreateTransaction(_ context.Context, owner store.Principal, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner(owner).transactions[t.ID] = t
	return nil
}

func (s *Store) GetTransaction(_ context.Context, owner store.Principal, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.data[owner]; ok {
		if t, ok := d.transactions[id]; ok {
			return t, nil
		}
	}
	return core.Transaction{}, store.ErrNotFound
}

func (s *Store) ListTransactions(_ context.Context, owner store.Principal) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data[owner]
	if !ok {
		return nil, nil
	}
	out := make([]core.Transaction, 0, len(d.transactions))
	for _, t := range d.transactions {
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Time.Equal(out[j].Date.Time) {
			return out[i].Date.Time.Before(out[j].Date.Time)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) UpdateTransaction(_ context.Context, owner store.Principal, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[owner]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := d.transactions[t.ID]; !ok {
		return store.ErrNotFound
	}
	d.transactions[t.ID] = t
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, owner store.Principal, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[owner]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := d.transactions[id]; !ok {
		return store.ErrNotFound
	}
	delete(d.transactions, id)
	return nil
}

func (s *Store) CreateCard(_ context.Context, owner store.Principal, c core.CreditCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner(owner).cards[c.ID] = c
	return nil
}

func (s *Store) GetCard(_ context.Context, owner store.Principal, id string) (core.CreditCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.data[owner]; ok {
		if c, ok := d.cards[id]; ok {
			return c, nil
		}
	}
	return core.CreditCard{}, store.ErrNotFound
}

func (s *Store) ListCards(_ context.Context, owner store.Principal) ([]core.CreditCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data[owner]
	if !ok {
		return nil, nil
	}
	out := make([]core.CreditCard, 0, len(d.cards))
	for _, c := range d.cards {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateCard(_ context.Context, owner store.Principal, c core.CreditCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[owner]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := d.cards[c.ID]; !ok {
		return store.ErrNotFound
	}
	d.cards[c.ID] = c
	return nil
}

func (s *Store) DeleteCard(_ context.Context, owner store.Principal, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[owner]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := d.cards[id]; !ok {
		return store.ErrNotFound
	}
	delete(d.cards, id)
	return nil
}

func (s *Store) CreateItem(_ context.Context, owner store.Principal, i core.BalanceSheetItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner(owner).items[i.ID] = i
	return nil
}

func (s *Store) GetItem(_ context.Context, owner store.Principal, id string) (core.BalanceSheetItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.data[owner]; ok {
		if i, ok := d.items[id]; ok {
			return i, nil
		}
	}
	return core.BalanceSheetItem{}, store.ErrNotFound
}

func (s *Store) ListItems(_ context.Context, owner store.Principal) ([]core.BalanceSheetItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data[owner]
	if !ok {
		return nil, nil
	}
	out := make([]core.BalanceSheetItem, 0, len(d.items))
	for _, i := range d.items {
		out = append(out, i)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateItem(_ context.Context, owner store.Principal, i core.BalanceSheetItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[owner]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := d.items[i.ID]; !ok {
		return store.ErrNotFound
	}
	d.items[i.ID] = i
	return nil
}

func (s *Store) DeleteItem(_ context.Context, owner store.Principal, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[owner]
	if !ok {
		return store.ErrNotFound
	}
	if _, ok := d.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(d.items, id)
	return nil
}

func (s *Store) UpsertGoal(_ context.Context, owner store.Principal, g core.BudgetGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner(owner).goals[goalKey{g.Category, g.Year, g.Month}] = g
	return nil
}

func (s *Store) ListGoals(_ context.Context, owner store.Principal, year int) ([]core.BudgetGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data[owner]
	if !ok {
		return nil, nil
	}
	var out []core.BudgetGoal
	for k, g := range d.goals {
		if k.year == year {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (s *Store) DeleteGoal(_ context.Context, owner store.Principal, category core.Category, year, month int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.data[owner]
	if !ok {
		return store.ErrNotFound
	}
	k := goalKey{category, year, month}
	if _, ok := d.goals[k]; !ok {
		return store.ErrNotFound
	}
	delete(d.goals, k)
	return nil
}
