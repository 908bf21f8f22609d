package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"learn-mate-go/internal/model"
	"learn-mate-go/pkg/token"
)

// fakeUserRepo 是 UserRepository 的内存实现，按外部身份标识索引。
type fakeUserRepo struct {
	byExternalID map[string]*model.User
	created      int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byExternalID: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.created++
	if user.ID == "" {
		user.ID = "user-" + user.ExternalID
	}
	stored := *user
	r.byExternalID[user.ExternalID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByExternalID(_ context.Context, externalID string) (*model.User, error) {
	user, ok := r.byExternalID[externalID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *user
	return &found, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, user := range r.byExternalID {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestGetOrCreateCreatesOnFirstSight(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.GetOrCreate(context.Background(), &token.IdentityClaims{
		ExternalID: "ext-12345",
		Email:      "a@example.com",
		Name:       "Alice",
	})

	require.NoError(t, err)
	assert.Equal(t, "ext-12345", user.ExternalID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 1, repo.created)
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	first, err := svc.GetOrCreate(context.Background(), &token.IdentityClaims{ExternalID: "ext-12345"})
	require.NoError(t, err)

	second, err := svc.GetOrCreate(context.Background(), &token.IdentityClaims{ExternalID: "ext-12345"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.created)
}

func TestGetOrCreateNameFallback(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.GetOrCreate(context.Background(), &token.IdentityClaims{ExternalID: "abcde-xyz"})

	require.NoError(t, err)
	assert.Equal(t, "User abcde", user.Name)
}
