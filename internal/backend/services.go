package backend

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"shree-admin/internal/domain/service"
	apperrors "shree-admin/pkg/errors"
)

const (
	fieldTitle           = "title"
	fieldLongDescription = "long_description"
	fieldCategoryID      = "category_id"
	fieldImage           = "image"
	fieldGallery         = "gallery"

	defaultUploadType = "application/octet-stream"
)

func (a *API) ListServices(ctx context.Context) ([]service.Service, error) {
	var out []service.Service
	if err := a.doJSON(ctx, http.MethodGet, pathServices, nil, &out, "Failed to load services"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateService validates the gallery before anything is sent.
func (a *API) CreateService(ctx context.Context, in service.CreateServiceInput) (*service.Service, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	body, contentType, err := serviceForm(in.Title, in.LongDescription, in.CategoryID, in.Image, in.Gallery)
	if err != nil {
		return nil, err
	}

	var out service.Service
	if err := a.client.do(ctx, a.credential, http.MethodPost, pathServices, body, contentType, &out, "Failed to create service"); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, nil
	}
	return &out, nil
}

// UpdateService sends gallery files only when the whole gallery is replaced.
func (a *API) UpdateService(ctx context.Context, id int64, in service.UpdateServiceInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	body, contentType, err := serviceForm(in.Title, in.LongDescription, in.CategoryID, in.Image, in.Gallery)
	if err != nil {
		return err
	}
	return a.client.do(ctx, a.credential, http.MethodPut, servicePath(id), body, contentType, nil, "Failed to update service")
}

func (a *API) DeleteService(ctx context.Context, id int64) error {
	return a.doJSON(ctx, http.MethodDelete, servicePath(id), nil, nil, "Failed to delete service")
}

func (a *API) ToggleService(ctx context.Context, id int64) error {
	return a.doJSON(ctx, http.MethodPatch, servicePath(id)+"/toggle", nil, nil, "Failed to update service status")
}

func servicePath(id int64) string {
	return pathServices + "/" + strconv.FormatInt(id, 10)
}

func serviceForm(title, description string, categoryID int64, image *service.Upload, gallery []service.Upload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := [][2]string{
		{fieldTitle, title},
		{fieldLongDescription, description},
		{fieldCategoryID, strconv.FormatInt(categoryID, 10)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", apperrors.InternalServer(msgEncodeFailed, err)
		}
	}

	if image != nil {
		if err := writeUpload(w, fieldImage, *image); err != nil {
			return nil, "", err
		}
	}
	for _, g := range gallery {
		if err := writeUpload(w, fieldGallery, g); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", apperrors.InternalServer(msgEncodeFailed, err)
	}
	return buf, w.FormDataContentType(), nil
}

func writeUpload(w *multipart.Writer, field string, u service.Upload) error {
	contentType := u.ContentType
	if contentType == "" {
		contentType = defaultUploadType
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+escapeQuotes(u.Filename)+`"`)
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return apperrors.InternalServer(msgEncodeFailed, err)
	}
	if _, err := io.Copy(part, u.Body); err != nil {
		return apperrors.InternalServer(msgEncodeFailed, err)
	}
	return nil
}

func escapeQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
