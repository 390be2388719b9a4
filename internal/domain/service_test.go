package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kassa/internal/core/apperror"
	"kassa/internal/core/entity"
	"kassa/internal/core/id"
)

type testEntity struct {
	entity.Catalog
}

type memRepo struct {
	items map[id.ID]*testEntity
}

func newMemRepo() *memRepo {
	return &memRepo{items: make(map[id.ID]*testEntity)}
}

func (r *memRepo) Create(_ context.Context, ent *testEntity) error {
	for _, existing := range r.items {
		if existing.Name == ent.Name {
			return apperror.NewDuplicate("entity", "name", ent.Name)
		}
	}
	r.items[ent.ID] = ent
	return nil
}

func (r *memRepo) GetByID(_ context.Context, entityID id.ID) (*testEntity, error) {
	ent, ok := r.items[entityID]
	if !ok {
		return nil, apperror.NewNotFound("entity", entityID.String())
	}
	return ent, nil
}

func (r *memRepo) Update(_ context.Context, ent *testEntity) error {
	if _, ok := r.items[ent.ID]; !ok {
		return apperror.NewNotFound("entity", ent.ID.String())
	}
	r.items[ent.ID] = ent
	return nil
}

func (r *memRepo) SetActive(_ context.Context, entityID id.ID, active bool) error {
	ent, ok := r.items[entityID]
	if !ok {
		return apperror.NewNotFound("entity", entityID.String())
	}
	ent.IsActive = active
	return nil
}

func (r *memRepo) List(_ context.Context, filter ListFilter) (ListResult[*testEntity], error) {
	var items []*testEntity
	for _, ent := range r.items {
		if !ent.IsActive && !filter.IncludeInactive {
			continue
		}
		items = append(items, ent)
	}
	return ListResult[*testEntity]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *memRepo) Exists(_ context.Context, entityID id.ID) (bool, error) {
	_, ok := r.items[entityID]
	return ok, nil
}

func (r *memRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, ent := range r.items {
		if ent.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type noopTx struct{}

func (noopTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *memRepo) *CatalogService[*testEntity] {
	return NewCatalogService(CatalogServiceConfig[*testEntity]{
		Repo:       repo,
		TxManager:  noopTx{},
		EntityName: "entity",
	})
}

func TestCatalogService_CreateValidates(t *testing.T) {
	svc := newTestService(newMemRepo())

	ent := &testEntity{Catalog: entity.NewCatalog("  ")}
	err := svc.Create(context.Background(), ent)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestCatalogService_CreateAndGet(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	ent := &testEntity{Catalog: entity.NewCatalog("First")}
	require.NoError(t, svc.Create(ctx, ent))

	got, err := svc.GetByID(ctx, ent.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)
	assert.True(t, got.IsActive)
}

func TestCatalogService_GetByID_NotFound(t *testing.T) {
	svc := newTestService(newMemRepo())

	_, err := svc.GetByID(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCatalogService_BeforeCreateHookBlocks(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	svc.Hooks().OnBeforeCreate(func(_ context.Context, ent *testEntity) error {
		return apperror.NewValidation("blocked by hook")
	})

	ent := &testEntity{Catalog: entity.NewCatalog("Hooked")}
	err := svc.Create(context.Background(), ent)
	require.Error(t, err)
	assert.Empty(t, repo.items)
}

func TestCatalogService_DeactivateAndRestore(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	ent := &testEntity{Catalog: entity.NewCatalog("Temp")}
	require.NoError(t, svc.Create(ctx, ent))

	require.NoError(t, svc.Deactivate(ctx, ent.ID))

	res, err := svc.List(ctx, DefaultListFilter())
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	res, err = svc.List(ctx, ListFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	require.NoError(t, svc.Restore(ctx, ent.ID))

	res, err = svc.List(ctx, DefaultListFilter())
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
}

func TestCatalogService_BeforeDeleteHookBlocks(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	ent := &testEntity{Catalog: entity.NewCatalog("Guarded")}
	require.NoError(t, svc.Create(ctx, ent))

	svc.Hooks().OnBeforeDelete(func(_ context.Context, _ *testEntity) error {
		return apperror.NewConflict("still referenced")
	})

	err := svc.Deactivate(ctx, ent.ID)
	require.Error(t, err)
	assert.True(t, repo.items[ent.ID].IsActive)
}
