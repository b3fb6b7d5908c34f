package service

import (
	"context"
	"errors"
	"testing"

	"foodgram-backend/internal/domains/ingredient/model"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items    map[int64]model.Ingredient
	nextID   int64
	inserted []model.Ingredient
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]model.Ingredient{}, nextID: 1}
}

func (f *fakeRepo) List(ctx context.Context, filter model.Filter) ([]model.Ingredient, error) {
	out := make([]model.Ingredient, 0, len(f.items))
	for _, i := range f.items {
		out = append(out, i)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*model.Ingredient, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, model.ErrIngredientNotFound
	}
	return &i, nil
}

func (f *fakeRepo) Create(ctx context.Context, i *model.Ingredient) (*model.Ingredient, error) {
	for _, e := range f.items {
		if e.Name == i.Name && e.MeasurementUnit == i.MeasurementUnit {
			return nil, model.ErrIngredientExists
		}
	}
	i.ID = f.nextID
	f.nextID++
	f.items[i.ID] = *i
	return i, nil
}

func (f *fakeRepo) Update(ctx context.Context, i *model.Ingredient) (*model.Ingredient, error) {
	f.items[i.ID] = *i
	return i, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return model.ErrIngredientNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) BulkInsert(ctx context.Context, items []model.Ingredient) (int64, error) {
	f.inserted = append(f.inserted, items...)
	return int64(len(items)), nil
}

var (
	admin = actor.New(1, actor.RoleAdmin)
	user  = actor.New(2, actor.RoleUser)
)

func TestCreate_AdminOnly(t *testing.T) {
	svc := NewService(newFakeRepo())
	req := model.CreateIngredientRequest{Name: " Flour ", MeasurementUnit: "g"}

	_, err := svc.Create(context.Background(), user, req)
	assert.True(t, errors.Is(err, permission.ErrForbidden))

	_, err = svc.Create(context.Background(), actor.Anonymous(), req)
	assert.True(t, errors.Is(err, permission.ErrUnauthorized))

	got, err := svc.Create(context.Background(), admin, req)
	require.NoError(t, err)
	assert.Equal(t, "Flour", got.Name)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), admin, model.CreateIngredientRequest{Name: "Flour", MeasurementUnit: "kilograms!!"})
	require.Error(t, err)
	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, e.Kind)
	assert.Contains(t, e.Details, "measurement_unit")
}

func TestUpdate_Patch(t *testing.T) {
	repo := newFakeRepo()
	repo.items[1] = model.Ingredient{ID: 1, Name: "Flour", MeasurementUnit: "g"}
	svc := NewService(repo)

	unit := "kg"
	got, err := svc.Update(context.Background(), admin, 1, model.UpdateIngredientRequest{MeasurementUnit: &unit})
	require.NoError(t, err)
	assert.Equal(t, model.Ingredient{ID: 1, Name: "Flour", MeasurementUnit: "kg"}, *got)

	_, err = svc.Update(context.Background(), admin, 99, model.UpdateIngredientRequest{MeasurementUnit: &unit})
	assert.True(t, errors.Is(err, model.ErrIngredientNotFound))
}

func TestUpdate_NormalizesBeforeValidation(t *testing.T) {
	repo := newFakeRepo()
	repo.items[1] = model.Ingredient{ID: 1, Name: "Flour", MeasurementUnit: "g"}
	svc := NewService(repo)

	blank := "   "
	_, err := svc.Update(context.Background(), admin, 1, model.UpdateIngredientRequest{Name: &blank})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, "Flour", repo.items[1].Name)

	broken := "Rye\nflour"
	_, err = svc.Update(context.Background(), admin, 1, model.UpdateIngredientRequest{Name: &broken})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreate_RejectsControlCharacters(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), admin, model.CreateIngredientRequest{Name: "Salt\n- 1000", MeasurementUnit: "g"})
	e, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, e.Kind)
	assert.Contains(t, e.Details, "name")
}

func TestImport_ValidatesAll(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Import(context.Background(), []model.CreateIngredientRequest{
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "", MeasurementUnit: "g"},
	})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Empty(t, repo.inserted)

	n, err := svc.Import(context.Background(), []model.CreateIngredientRequest{
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "Salt ", MeasurementUnit: "g"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "Salt", repo.inserted[1].Name)
}
