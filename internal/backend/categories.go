package backend

import (
	"context"
	"net/http"
	"strconv"

	"shree-admin/internal/domain/category"
)

func (a *API) ListCategories(ctx context.Context) ([]category.Category, error) {
	var out []category.Category
	if err := a.doJSON(ctx, http.MethodGet, pathCategories, nil, &out, "Failed to load categories"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory returns the stored category, or nil when the backend does
// not echo it back.
func (a *API) CreateCategory(ctx context.Context, in category.CreateCategoryInput) (*category.Category, error) {
	var out category.Category
	if err := a.doJSON(ctx, http.MethodPost, pathCategories, in, &out, "Failed to create category"); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, nil
	}
	return &out, nil
}

func (a *API) UpdateCategory(ctx context.Context, id int64, in category.UpdateCategoryInput) error {
	return a.doJSON(ctx, http.MethodPut, categoryPath(id), in, nil, "Failed to update category")
}

func (a *API) DeleteCategory(ctx context.Context, id int64) error {
	return a.doJSON(ctx, http.MethodDelete, categoryPath(id), nil, nil, "Failed to delete category")
}

func (a *API) ReorderCategories(ctx context.Context, orderedIDs []int64) error {
	in := category.ReorderInput{OrderedIDs: orderedIDs}
	return a.doJSON(ctx, http.MethodPut, pathCategories+"/reorder", in, nil, "Failed to reorder categories")
}

func categoryPath(id int64) string {
	return pathCategories + "/" + strconv.FormatInt(id, 10)
}
