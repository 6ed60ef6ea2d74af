package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"shree-admin/internal/audit"
	"shree-admin/internal/domain/blog"
	"shree-admin/internal/media"
	apperrors "shree-admin/pkg/errors"

	"github.com/labstack/echo/v4"
)

// BlogHandler sends blog images through the asset uploader and stores the
// returned URLs on the post.
type BlogHandler struct {
	base
	uploader media.Uploader
	maxWidth int
}

func NewBlogHandler(workspaces Workspaces, recorder audit.Recorder, uploader media.Uploader, maxWidth int) *BlogHandler {
	if uploader == nil {
		uploader = media.DataURIUploader{}
	}
	return &BlogHandler{base: newBase(workspaces, recorder), uploader: uploader, maxWidth: maxWidth}
}

func (h *BlogHandler) List(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	out := ws.Blogs.Refresh(c.Request().Context())

	var keep func(blog.Blog) bool
	if q := strings.TrimSpace(c.QueryParam(queryText)); q != "" {
		keep = func(b blog.Blog) bool { return b.Matches(q) }
	}
	return respondList(c, ws.Blogs, out, keep)
}

func (h *BlogHandler) Get(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := blogID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	b, err := ws.API.GetBlog(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgBlogNotFound)
		}
		return handleHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BlogHandler) Create(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	form, err := multipartForm(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	payload := blogPayload(form)
	if err := payload.Validate(); err != nil {
		return handleHTTPError(c, err)
	}

	ctx := c.Request().Context()
	stored, err := h.attachImages(ctx, form, &payload)
	if err != nil {
		return handleHTTPError(c, err)
	}

	out := ws.Blogs.Create(ctx, func(ctx context.Context) (*blog.Blog, error) {
		return nil, ws.API.CreateBlog(ctx, payload)
	})
	if !out.Success {
		h.discard(ctx, c, stored)
	}
	h.record(c, audit.ResourceTypeBlog, payload.Slug, audit.ActionCreate, out)
	return respondList(c, ws.Blogs, out, nil)
}

// Update keeps the current images unless new files are sent.
func (h *BlogHandler) Update(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := blogID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	form, err := multipartForm(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	payload := blogPayload(form)
	if err := payload.Validate(); err != nil {
		return handleHTTPError(c, err)
	}

	ctx := c.Request().Context()
	stored, err := h.attachImages(ctx, form, &payload)
	if err != nil {
		return handleHTTPError(c, err)
	}

	out := ws.Blogs.Update(ctx, id, func(ctx context.Context) (*blog.Blog, error) {
		if err := ws.API.UpdateBlog(ctx, id, payload); err != nil {
			return nil, err
		}
		return ws.API.GetBlog(ctx, id)
	})
	if !out.Success {
		h.discard(ctx, c, stored)
	}
	h.record(c, audit.ResourceTypeBlog, id, audit.ActionUpdate, out)
	return respondList(c, ws.Blogs, out, nil)
}

func (h *BlogHandler) Delete(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := blogID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	out := ws.Blogs.Delete(c.Request().Context(), id, func(ctx context.Context) error {
		return ws.API.DeleteBlog(ctx, id)
	})
	h.record(c, audit.ResourceTypeBlog, id, audit.ActionDelete, out)
	return respondList(c, ws.Blogs, out, nil)
}

func (h *BlogHandler) Toggle(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := blogID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	current, found, lookup := ws.Blogs.Lookup(c.Request().Context(), id)
	if !lookup.Success {
		return respondList(c, ws.Blogs, lookup, nil)
	}
	if !found {
		return respondError(c, http.StatusNotFound, msgBlogNotFound)
	}
	target := !current.IsPublished

	out := ws.Blogs.Patch(c.Request().Context(), id,
		func(b blog.Blog) blog.Blog {
			b.IsPublished = target
			return b
		},
		func(ctx context.Context) (*blog.Blog, error) {
			return nil, ws.API.ToggleBlog(ctx, id)
		})
	h.record(c, audit.ResourceTypeBlog, id, audit.ActionToggle, out)
	return respondList(c, ws.Blogs, out, nil)
}

// attachImages uploads the image and cover files, when present, and
// returns the URLs it stored.
func (h *BlogHandler) attachImages(ctx context.Context, form *multipart.Form, payload *blog.Payload) ([]string, error) {
	var stored []string
	for _, field := range []string{formImage, formCoverImage} {
		files := form.File[field]
		if len(files) == 0 {
			continue
		}

		url, err := h.store(ctx, files[0])
		if err != nil {
			return stored, err
		}
		stored = append(stored, url)

		if field == formImage {
			payload.Image = url
		} else {
			payload.CoverImage = url
		}
	}
	return stored, nil
}

func (h *BlogHandler) store(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	asset, err := readAsset(fh)
	if err != nil {
		return "", err
	}
	asset, err = media.Normalize(asset, h.maxWidth)
	if err != nil {
		return "", err
	}
	url, err := h.uploader.Upload(ctx, asset)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadGateway, msgUploadFailed).SetInternal(err)
	}
	return url, nil
}

// discard removes uploads that no blog ended up referencing.
func (h *BlogHandler) discard(ctx context.Context, c echo.Context, urls []string) {
	deleter, ok := h.uploader.(media.Deleter)
	if !ok {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, url := range urls {
		if err := deleter.Delete(ctx, url); err != nil {
			c.Logger().Warnf("discard upload %s: %v", url, err)
		}
	}
}

func blogPayload(form *multipart.Form) blog.Payload {
	return blog.Payload{
		Title:       formValue(form, formTitle),
		Description: formValue(form, formDescription),
		Slug:        formValue(form, formSlug),
		Content:     formValue(form, formContent),
	}
}

func blogID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param(paramID))
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, msgInvalidID)
	}
	return id, nil
}
