package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"shree-admin/internal/audit"
	"shree-admin/internal/domain/service"
	"shree-admin/internal/media"
	"shree-admin/internal/session"

	"github.com/labstack/echo/v4"
)

type ServiceHandler struct {
	base
	maxWidth int
}

func NewServiceHandler(workspaces Workspaces, recorder audit.Recorder, maxWidth int) *ServiceHandler {
	return &ServiceHandler{base: newBase(workspaces, recorder), maxWidth: maxWidth}
}

func (h *ServiceHandler) List(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	out := ws.Services.Refresh(c.Request().Context())

	q := strings.TrimSpace(c.QueryParam(queryText))
	cat := strings.TrimSpace(c.QueryParam(queryCategory))
	var keep func(service.Service) bool
	if q != "" || cat != "" {
		keep = func(s service.Service) bool { return s.Matches(q, cat) }
	}
	return respondList(c, ws.Services, out, keep)
}

func (h *ServiceHandler) Create(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	form, err := multipartForm(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	in := service.CreateServiceInput{
		Title:           formValue(form, formTitle),
		LongDescription: formValue(form, formLongDescription),
		CategoryID:      formInt64(form, formCategoryID),
	}
	gallery := form.File[formGallery]
	if err := service.ValidateGalleryForCreate(len(gallery)); err != nil {
		return handleHTTPError(c, err)
	}
	if in.Image, err = h.optionalUpload(form); err != nil {
		return handleHTTPError(c, err)
	}
	if in.Gallery, err = h.uploads(gallery); err != nil {
		return handleHTTPError(c, err)
	}
	if err := in.Validate(); err != nil {
		return handleHTTPError(c, err)
	}

	out := ws.Services.Create(c.Request().Context(), func(ctx context.Context) (*service.Service, error) {
		return ws.API.CreateService(ctx, in)
	})
	h.record(c, audit.ResourceTypeService, "", audit.ActionCreate, out)
	return respondList(c, ws.Services, out, nil)
}

// Update replaces the gallery only when a full set of images is sent.
func (h *ServiceHandler) Update(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	form, err := multipartForm(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	in := service.UpdateServiceInput{
		Title:           formValue(form, formTitle),
		LongDescription: formValue(form, formLongDescription),
		CategoryID:      formInt64(form, formCategoryID),
	}
	gallery := form.File[formGallery]
	if err := service.ValidateGalleryForUpdate(len(gallery)); err != nil {
		return handleHTTPError(c, err)
	}
	if in.Image, err = h.optionalUpload(form); err != nil {
		return handleHTTPError(c, err)
	}
	if in.Gallery, err = h.uploads(gallery); err != nil {
		return handleHTTPError(c, err)
	}
	if err := in.Validate(); err != nil {
		return handleHTTPError(c, err)
	}

	key := session.Int64Key(id)
	out := ws.Services.Update(c.Request().Context(), key, func(ctx context.Context) (*service.Service, error) {
		return nil, ws.API.UpdateService(ctx, id, in)
	})
	h.record(c, audit.ResourceTypeService, key, audit.ActionUpdate, out)
	return respondList(c, ws.Services, out, nil)
}

func (h *ServiceHandler) Delete(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	key := session.Int64Key(id)
	out := ws.Services.Delete(c.Request().Context(), key, func(ctx context.Context) error {
		return ws.API.DeleteService(ctx, id)
	})
	h.record(c, audit.ResourceTypeService, key, audit.ActionDelete, out)
	return respondList(c, ws.Services, out, nil)
}

// Toggle flips is_active optimistically. The target is fixed when the
// request arrives so a queued repeat does not undo it.
func (h *ServiceHandler) Toggle(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return handleHTTPError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleHTTPError(c, err)
	}

	key := session.Int64Key(id)
	current, found, lookup := ws.Services.Lookup(c.Request().Context(), key)
	if !lookup.Success {
		return respondList(c, ws.Services, lookup, nil)
	}
	if !found {
		return respondError(c, http.StatusNotFound, msgItemNotFound)
	}
	target := !current.IsActive

	out := ws.Services.Patch(c.Request().Context(), key,
		func(s service.Service) service.Service {
			s.IsActive = target
			return s
		},
		func(ctx context.Context) (*service.Service, error) {
			return nil, ws.API.ToggleService(ctx, id)
		})
	h.record(c, audit.ResourceTypeService, key, audit.ActionToggle, out)
	return respondList(c, ws.Services, out, nil)
}

func (h *ServiceHandler) optionalUpload(form *multipart.Form) (*service.Upload, error) {
	files := form.File[formImage]
	if len(files) == 0 {
		return nil, nil
	}
	u, err := h.upload(files[0])
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (h *ServiceHandler) uploads(files []*multipart.FileHeader) ([]service.Upload, error) {
	out := make([]service.Upload, 0, len(files))
	for _, fh := range files {
		u, err := h.upload(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (h *ServiceHandler) upload(fh *multipart.FileHeader) (service.Upload, error) {
	asset, err := readAsset(fh)
	if err != nil {
		return service.Upload{}, err
	}
	asset, err = media.Normalize(asset, h.maxWidth)
	if err != nil {
		return service.Upload{}, err
	}
	return service.Upload{
		Filename:    asset.Filename,
		ContentType: asset.ContentType,
		Body:        bytes.NewReader(asset.Data),
	}, nil
}

func formInt64(form *multipart.Form, key string) int64 {
	n, err := strconv.ParseInt(formValue(form, key), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
