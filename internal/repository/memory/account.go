package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

// AccountRepository is an in-memory model.AccountStore.
type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.Account
	byEmail map[string]uuid.UUID
}

// NewAccountRepository creates an empty AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[uuid.UUID]model.Account),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[model.NormalizeEmail(email)]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return cloneAccount(r.byID[id]), nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return cloneAccount(a), nil
}

func (r *AccountRepository) Create(_ context.Context, account model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := model.NormalizeEmail(account.Email)
	if _, ok := r.byEmail[email]; ok {
		return model.Account{}, model.ErrDuplicate
	}
	if _, ok := r.byID[account.ID]; ok {
		return model.Account{}, model.ErrDuplicate
	}

	account = cloneAccount(account)
	r.byID[account.ID] = account
	r.byEmail[email] = account.ID

	return cloneAccount(account), nil
}

func (r *AccountRepository) UpdateProfile(_ context.Context, id uuid.UUID, profile model.ProfileUpdate, now time.Time) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	if profile.FirstName != "" {
		a.FirstName = profile.FirstName
	}
	if profile.LastName != "" {
		a.LastName = profile.LastName
	}
	if profile.Phone != "" {
		a.Phone = profile.Phone
	}
	a.UpdatedAt = now
	r.byID[id] = a

	return cloneAccount(a), nil
}

func (r *AccountRepository) SetPasswordHash(_ context.Context, id uuid.UUID, hash string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = now
	r.byID[id] = a
	return nil
}

func (r *AccountRepository) Deactivate(_ context.Context, id uuid.UUID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	a.Active = false
	a.UpdatedAt = now
	r.byID[id] = a
	return nil
}

func (r *AccountRepository) AddRole(_ context.Context, id uuid.UUID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return model.ErrNotFound
	}
	for _, existing := range a.Roles {
		if existing == role {
			return nil
		}
	}
	a.Roles = append(append([]string(nil), a.Roles...), role)
	r.byID[id] = a
	return nil
}

func cloneAccount(a model.Account) model.Account {
	if a.Roles != nil {
		a.Roles = append([]string(nil), a.Roles...)
	}
	return a
}
