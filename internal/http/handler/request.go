package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"shree-admin/internal/media"
	"shree-admin/pkg/validator"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON          = "application/json"
	maxStrictBodyBytes int64 = 1 << 20 // Keep parser bound aligned with global body limit.
)

func bindStrictJSON(c echo.Context, dst interface{}) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	body := io.LimitReader(c.Request().Body, maxStrictBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}

// parseID reads a positive numeric :id.
func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param(paramID), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, msgInvalidID)
	}
	return id, nil
}

func multipartForm(c echo.Context) (*multipart.Form, error) {
	if err := c.Request().ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, msgInvalidForm)
	}
	return c.Request().MultipartForm, nil
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// readAsset checks and loads an uploaded file into memory.
func readAsset(fh *multipart.FileHeader) (media.Asset, error) {
	contentType := fh.Header.Get(echo.HeaderContentType)
	for _, check := range []error{
		validator.FileName(fh.Filename),
		validator.FileSize(fh.Size),
		validator.ContentType(contentType),
	} {
		if check != nil {
			return media.Asset{}, echo.NewHTTPError(http.StatusBadRequest, check.Error())
		}
	}

	f, err := fh.Open()
	if err != nil {
		return media.Asset{}, echo.NewHTTPError(http.StatusBadRequest, msgReadUploadFailed).SetInternal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return media.Asset{}, echo.NewHTTPError(http.StatusBadRequest, msgReadUploadFailed).SetInternal(err)
	}
	return media.Asset{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
