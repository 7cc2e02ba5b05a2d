package memory

import (
	"context"
	"sync"

	"github.com/survivorleague/survivor-api/internal/domain/credential"
)

type CredentialRepository struct {
	mu    sync.RWMutex
	codes map[string]credential.AccessCode
}

func NewCredentialRepository(codes []credential.AccessCode) *CredentialRepository {
	byID := make(map[string]credential.AccessCode, len(codes))
	for _, item := range codes {
		byID[item.ID] = item
	}
	return &CredentialRepository{codes: byID}
}

func (r *CredentialRepository) GetByCodeHash(_ context.Context, codeHash string) (credential.AccessCode, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.codes {
		if item.CodeHash == codeHash {
			return item, true, nil
		}
	}
	return credential.AccessCode{}, false, nil
}

func (r *CredentialRepository) GetByEmail(_ context.Context, email string) (credential.AccessCode, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.codes {
		if item.Email == email {
			return item, true, nil
		}
	}
	return credential.AccessCode{}, false, nil
}

func (r *CredentialRepository) Upsert(_ context.Context, item credential.AccessCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codes[item.ID] = item
	return nil
}
