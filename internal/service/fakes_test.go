package service

import (
	"context"
	"sync"

	"github.com/csemotors/csemotors-go/internal/model"
	"github.com/csemotors/csemotors-go/internal/repository"
)

type fakeAccountStore struct {
	mu       sync.Mutex
	accounts map[int64]*model.Account
	nextID   int64
	err      error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[int64]*model.Account{}}
}

func (f *fakeAccountStore) Create(_ context.Context, a *model.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.accounts {
		if existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	a.ID = f.nextID
	stored := *a
	f.accounts[a.ID] = &stored
	return nil
}

func (f *fakeAccountStore) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.accounts {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (f *fakeAccountStore) GetByID(_ context.Context, id int64) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	c := *a
	return &c, nil
}

func (f *fakeAccountStore) Update(_ context.Context, upd model.AccountUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, a := range f.accounts {
		if id != upd.ID && a.Email == upd.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if a, ok := f.accounts[upd.ID]; ok {
		a.FirstName, a.LastName, a.Email = upd.FirstName, upd.LastName, upd.Email
	}
	return nil
}

func (f *fakeAccountStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.accounts[id]; ok {
		a.PasswordHash = hash
	}
	return nil
}
