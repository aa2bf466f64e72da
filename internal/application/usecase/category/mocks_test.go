package category

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type memoryCategoryRepository struct {
	categories map[string]*entity.Category
}

func newMemoryCategoryRepository(categories ...*entity.Category) *memoryCategoryRepository {
	repo := &memoryCategoryRepository{categories: make(map[string]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *memoryCategoryRepository) FindVisible(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, c := range r.categories {
		if c.VisibleTo(userID) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memoryCategoryRepository) FindByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

func (r *memoryCategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *memoryCategoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *memoryCategoryRepository) Delete(_ context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

func (r *memoryCategoryRepository) HasChildren(_ context.Context, id string) (bool, error) {
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryCategoryRepository) UpsertDefaults(_ context.Context, categories []*entity.Category) error {
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return nil
}

func (r *memoryCategoryRepository) DeleteAllByOwner(_ context.Context, ownerID uuid.UUID) error {
	for id, c := range r.categories {
		if c.OwnerID != nil && *c.OwnerID == ownerID {
			delete(r.categories, id)
		}
	}
	return nil
}

type mockSuggester struct {
	available  bool
	suggestion *adapter.CategorySuggestion
	err        error

	gotOptions []adapter.CategoryOption
}

func (m *mockSuggester) Suggest(_ context.Context, _ string, options []adapter.CategoryOption) (*adapter.CategorySuggestion, error) {
	m.gotOptions = options
	return m.suggestion, m.err
}

func (m *mockSuggester) IsAvailable() bool {
	return m.available
}
