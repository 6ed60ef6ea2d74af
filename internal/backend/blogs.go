package backend

import (
	"context"
	"net/http"
	"net/url"

	"shree-admin/internal/domain/blog"
)

func (a *API) ListBlogs(ctx context.Context) ([]blog.Blog, error) {
	var out []blog.Blog
	if err := a.doJSON(ctx, http.MethodGet, pathBlogs, nil, &out, "Failed to load blogs"); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBlog returns an error matching errors.ErrNotFound for unknown ids.
func (a *API) GetBlog(ctx context.Context, id string) (*blog.Blog, error) {
	var out blog.Blog
	if err := a.doJSON(ctx, http.MethodGet, blogPath(id), nil, &out, "Blog not found"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) CreateBlog(ctx context.Context, in blog.Payload) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return a.doJSON(ctx, http.MethodPost, pathBlogs, in, nil, "Failed to create blog")
}

func (a *API) UpdateBlog(ctx context.Context, id string, in blog.Payload) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return a.doJSON(ctx, http.MethodPut, blogPath(id), in, nil, "Failed to update blog")
}

func (a *API) DeleteBlog(ctx context.Context, id string) error {
	return a.doJSON(ctx, http.MethodDelete, blogPath(id), nil, nil, "Failed to delete blog")
}

func (a *API) ToggleBlog(ctx context.Context, id string) error {
	return a.doJSON(ctx, http.MethodPatch, blogPath(id)+"/toggle", nil, nil, "Failed to update blog status")
}

func blogPath(id string) string {
	return pathBlogs + "/" + url.PathEscape(id)
}
