package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"shree-admin/internal/config"
	"shree-admin/internal/domain/enquiry"
	"shree-admin/internal/domain/notification"
	"shree-admin/internal/domain/service"
	apperrors "shree-admin/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)
	return c, &hits
}

func uploads(n int) []service.Upload {
	out := make([]service.Upload, n)
	for i := range out {
		out[i] = service.Upload{Filename: "g.jpg", ContentType: "image/jpeg", Body: bytes.NewReader([]byte("img"))}
	}
	return out
}

func TestClient_NotConfiguredShortCircuits(t *testing.T) {
	c := New(config.BackendConfig{}, nil)

	_, err := c.For("tok").ListReviews(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConfiguration))
	assert.Equal(t, msgNotConfigured, apperrors.Message(err, ""))
}

func TestClient_ForwardsBearerCredential(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.For("abc123").ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestClient_HTTPErrorUsesBackendMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Category in use"}`))
	})

	err := c.For("tok").DeleteCategory(context.Background(), 4)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrHTTP))
	assert.Equal(t, http.StatusConflict, apperrors.StatusOf(err))
	assert.Equal(t, "Category in use", apperrors.Message(err, ""))
}

func TestClient_HTTPErrorFallbackMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.For("tok").ToggleService(context.Background(), 1)

	assert.Equal(t, "Failed to update service status", apperrors.Message(err, ""))
}

func TestClient_NotFoundMatchesSentinel(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.For("tok").GetBlog(context.Background(), "missing")

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestClient_TimeoutIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	c := New(config.BackendConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)

	_, err := c.For("tok").ListServices(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNetwork))
	assert.Equal(t, msgTimedOut, apperrors.Message(err, ""))
}

func TestClient_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			assert.Equal(t, "admin", in["username"])
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"token":"t0k"}`))
		})

		token, err := c.Login(context.Background(), "admin", "pw")

		require.NoError(t, err)
		assert.Equal(t, "t0k", token)
	})

	t.Run("rejected", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
		})

		_, err := c.Login(context.Background(), "admin", "bad")

		assert.Equal(t, "Invalid credentials", apperrors.Message(err, ""))
	})
}

func TestCreateService_GalleryValidatedBeforeNetwork(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	_, err := c.For("tok").CreateService(context.Background(), service.CreateServiceInput{
		Title:      "Plumbing",
		CategoryID: 1,
		Gallery:    uploads(4),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, "Exactly 5 images are required", apperrors.Message(err, ""))
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestCreateService_SendsMultipartGallery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Plumbing", r.FormValue("title"))
		assert.Equal(t, "3", r.FormValue("category_id"))
		assert.Len(t, r.MultipartForm.File["gallery"], service.GallerySize)
		assert.Len(t, r.MultipartForm.File["image"], 1)
		_, _ = w.Write([]byte(`{"id":9,"title":"Plumbing","category_id":3}`))
	})

	svc, err := c.For("tok").CreateService(context.Background(), service.CreateServiceInput{
		Title:      "Plumbing",
		CategoryID: 3,
		Image:      &service.Upload{Filename: "cover.png", Body: bytes.NewReader([]byte("png"))},
		Gallery:    uploads(service.GallerySize),
	})

	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, int64(9), svc.ID)
}

func TestUpdateService_EmptyGalleryKeepsExisting(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Empty(t, r.MultipartForm.File["gallery"])
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/services/7", r.URL.Path)
	})

	err := c.For("tok").UpdateService(context.Background(), 7, service.UpdateServiceInput{Title: "x", CategoryID: 1})

	assert.NoError(t, err)
}

func TestUpdateEnquiryStatus_RejectsUnknownStatus(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	err := c.For("tok").UpdateEnquiryStatus(context.Background(), 1, enquiry.Status("archived"))

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestNotifications_IgnoresBackendTotal(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reviews":2,"enquiries":0,"support":3,"total":99}`))
	})

	counts, err := c.For("tok").Notifications(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, counts.Total())
}

func TestMarkNotificationsSeen_Path(t *testing.T) {
	var gotPath, gotMethod string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		_, _ = io.Copy(io.Discard, r.Body)
	})

	err := c.For("tok").MarkNotificationsSeen(context.Background(), notification.TypeSupport)

	require.NoError(t, err)
	assert.Equal(t, "/api/admin/notifications/support", gotPath)
	assert.Equal(t, http.MethodPatch, gotMethod)
}
