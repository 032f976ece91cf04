package accountrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/go-petr/account-engine/internal/domain"
)

// RepoMemory keeps accounts in process memory. It is used by tests and local runs.
type RepoMemory struct {
	mu       sync.RWMutex
	lastID   int64
	accounts map[int64]domain.Account
}

// NewRepoMemory returns empty RepoMemory.
func NewRepoMemory() *RepoMemory {
	return &RepoMemory{accounts: make(map[int64]domain.Account)}
}

// Get returns the account with the given id.
func (r *RepoMemory) Get(_ context.Context, id int64) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return a, nil
}

// Save inserts the account when its id is zero and updates it otherwise.
func (r *RepoMemory) Save(_ context.Context, a domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == 0 {
		r.lastID++
		a.ID = r.lastID
	} else if _, ok := r.accounts[a.ID]; !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	r.accounts[a.ID] = a

	return a, nil
}

// Delete removes the account with the given id.
func (r *RepoMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}

	delete(r.accounts, id)

	return nil
}

// List returns all accounts ordered by id.
func (r *RepoMemory) List(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		items = append(items, a)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	return items, nil
}
