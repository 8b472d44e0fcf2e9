package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/scope"
	"gestock/internal/core/types"
)

type mockRepo struct {
	accounts map[id.ID]*Account
}

func newMockRepo() *mockRepo {
	return &mockRepo{accounts: make(map[id.ID]*Account)}
}

func (m *mockRepo) Create(ctx context.Context, a *Account) error {
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *mockRepo) Update(ctx context.Context, a *Account) error {
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, accountID id.ID) (*Account, error) {
	if a, ok := m.accounts[accountID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, apperror.NewNotFound("account", accountID)
}

func (m *mockRepo) GetByIDForUpdate(ctx context.Context, accountID id.ID) (*Account, error) {
	return m.GetByID(ctx, accountID)
}

func (m *mockRepo) GetByName(ctx context.Context, storeID id.ID, name string) (*Account, error) {
	for _, a := range m.accounts {
		if a.StoreID == storeID && a.Name == name {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("account", name)
}

func (m *mockRepo) SetBalance(ctx context.Context, accountID id.ID, balance types.Money) error {
	m.accounts[accountID].Balance = balance
	return nil
}

func (m *mockRepo) FindDefault(ctx context.Context, storeID id.ID) (*Account, error) {
	return nil, apperror.NewNotFound("account", storeID)
}

func (m *mockRepo) List(ctx context.Context, f Filter) ([]Account, error) {
	out := make([]Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func storeCtx(storeID id.ID) context.Context {
	return scope.WithScope(context.Background(), scope.ForStore(id.New(), "clerk", storeID))
}

func TestCreate_DuplicateName(t *testing.T) {
	storeID := id.New()
	ctx := storeCtx(storeID)
	svc := NewService(newMockRepo())

	_, err := svc.Create(ctx, NewAccount(id.Nil(), "Caisse", TypeCash))
	require.NoError(t, err)

	_, err = svc.Create(ctx, NewAccount(id.Nil(), "Caisse", TypeBank))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))
}

func TestCreate_SameNameOtherStore(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	_, err := svc.Create(storeCtx(id.New()), NewAccount(id.Nil(), "Caisse", TypeCash))
	require.NoError(t, err)

	// Names are unique per store, not globally.
	_, err = svc.Create(storeCtx(id.New()), NewAccount(id.Nil(), "Caisse", TypeCash))
	require.NoError(t, err)
}

func TestUpdate_RenameToExistingName(t *testing.T) {
	storeID := id.New()
	ctx := storeCtx(storeID)
	svc := NewService(newMockRepo())

	first, err := svc.Create(ctx, NewAccount(id.Nil(), "Caisse", TypeCash))
	require.NoError(t, err)
	second, err := svc.Create(ctx, NewAccount(id.Nil(), "Banque", TypeBank))
	require.NoError(t, err)

	second.Name = first.Name
	_, err = svc.Update(ctx, second)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))

	// Keeping its own name is not a collision.
	first.Name = "Caisse"
	_, err = svc.Update(ctx, first)
	require.NoError(t, err)
}
