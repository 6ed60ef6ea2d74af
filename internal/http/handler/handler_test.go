package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"shree-admin/internal/auth"
	"shree-admin/internal/backend"
	"shree-admin/internal/config"
	"shree-admin/internal/domain/blog"
	"shree-admin/internal/domain/enquiry"
	"shree-admin/internal/domain/review"
	"shree-admin/internal/domain/service"
	"shree-admin/internal/notify"
	"shree-admin/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCredential = "test-admin-token"

// fakeBackend is a small in-memory stand-in for the REST API.
type fakeBackend struct {
	mu   sync.Mutex
	hits map[string]int

	enquiries []enquiry.Enquiry
	reviews   []review.Review
	services  []service.Service
	blogs     []blog.Blog

	failStatus    bool
	failToggle    bool
	dashboardDown bool
	hiddenResult  bool
	lastAuth      string
	galleryParts  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		hits: make(map[string]int),
		enquiries: []enquiry.Enquiry{
			{ID: 1, CustomerName: "Asha", Email: "asha@example.com", Status: enquiry.StatusPending},
			{ID: 2, CustomerName: "Ravi", Email: "ravi@example.com", Status: enquiry.StatusContacted},
		},
		reviews: []review.Review{
			{ID: 7, Name: "Meena", Review: "Great", Rating: 5},
		},
		services: []service.Service{
			{ID: 3, Title: "AC Repair", Category: "Appliances", IsActive: true},
			{ID: 4, Title: "Plumbing", Category: "Home", IsActive: true},
		},
		blogs: []blog.Blog{
			{ID: "b1", Title: "Monsoon care", Slug: "monsoon-care"},
		},
		hiddenResult: true,
	}
}

func (f *fakeBackend) hitCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	f.hits[key]++
	f.lastAuth = r.Header.Get("Authorization")

	writeJSON := func(status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	switch key {
	case "GET /api/admin/notifications":
		writeJSON(http.StatusOK, map[string]int{"reviews": 2, "enquiries": 1, "support": 0, "total": 99})
	case "PATCH /api/admin/notifications/reviews":
		writeJSON(http.StatusOK, map[string]bool{"success": true})
	case "GET /api/admin/enquiries":
		writeJSON(http.StatusOK, f.enquiries)
	case "PATCH /api/admin/enquiries/1/status":
		if f.failStatus {
			writeJSON(http.StatusInternalServerError, map[string]string{"message": "Database unavailable"})
			return
		}
		var body enquiry.UpdateStatusInput
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.enquiries[0].Status = body.Status
		writeJSON(http.StatusOK, map[string]bool{"success": true})
	case "DELETE /api/admin/enquiries/2":
		f.enquiries = f.enquiries[:1]
		writeJSON(http.StatusOK, map[string]bool{"success": true})
	case "GET /api/admin/reviews":
		writeJSON(http.StatusOK, f.reviews)
	case "PATCH /api/admin/reviews/7/hide":
		f.reviews[0].IsHidden = f.hiddenResult
		writeJSON(http.StatusOK, review.HideResult{IsHidden: f.hiddenResult})
	case "GET /api/admin/services":
		writeJSON(http.StatusOK, f.services)
	case "POST /api/admin/services":
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			f.galleryParts = len(r.MultipartForm.File["gallery"])
		}
		created := service.Service{ID: 9, Title: r.FormValue("title"), IsActive: true}
		f.services = append(f.services, created)
		writeJSON(http.StatusCreated, created)
	case "PATCH /api/admin/services/3/toggle":
		if f.failToggle {
			writeJSON(http.StatusInternalServerError, map[string]string{"message": "Could not update status"})
			return
		}
		f.services[0].IsActive = !f.services[0].IsActive
		writeJSON(http.StatusOK, map[string]bool{"success": true})
	case "PUT /api/admin/services/3":
		writeJSON(http.StatusOK, map[string]bool{"success": true})
	case "GET /api/admin/blogs":
		writeJSON(http.StatusOK, f.blogs)
	case "PATCH /api/admin/blogs/b1/toggle":
		if f.failToggle {
			writeJSON(http.StatusInternalServerError, map[string]string{"message": "Could not update status"})
			return
		}
		f.blogs[0].IsPublished = !f.blogs[0].IsPublished
		writeJSON(http.StatusOK, map[string]bool{"success": true})
	case "GET /api/admin/blogs/missing":
		writeJSON(http.StatusNotFound, map[string]string{"message": "Not found"})
	case "GET /api/dashboard":
		if f.dashboardDown {
			writeJSON(http.StatusBadGateway, map[string]string{"message": "down"})
			return
		}
		writeJSON(http.StatusOK, map[string]int{"services": 2, "categories": 1, "reviews": 1, "enquiries": 2, "support": 0, "blogs": 0})
	default:
		writeJSON(http.StatusNotFound, map[string]string{"message": "no route " + key})
	}
}

type harness struct {
	e       *echo.Echo
	backend *fakeBackend
	store   *session.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fb := newFakeBackend()
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	client := backend.New(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)
	store := session.NewStore(context.Background(), client, notify.NewScheduler(), time.Minute, time.Hour, nil)
	t.Cleanup(store.Stop)

	return &harness{e: echo.New(), backend: fb, store: store}
}

// serve registers h on route and sends one request through the router, with
// the test credential already on the context the way the gate leaves it.
func (hs *harness) serve(t *testing.T, route string, h echo.HandlerFunc, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	hs.e.Add(method, route, func(c echo.Context) error {
		auth.SetCredential(c, testCredential)
		return h(c)
	})

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	hs.e.ServeHTTP(rec, req)
	return rec
}

func decodeList[T any](t *testing.T, rec *httptest.ResponseRecorder) ListResponse[T] {
	t.Helper()
	var out ListResponse[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestWorkspaceRequiresCredential(t *testing.T) {
	hs := newHarness(t)
	h := NewEnquiryHandler(hs.store, nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/enquiries", nil)
	rec := httptest.NewRecorder()
	c := hs.e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEnquiryList_FiltersByQuery(t *testing.T) {
	hs := newHarness(t)
	h := NewEnquiryHandler(hs.store, nil)

	rec := hs.serve(t, "/dashboard/enquiries", h.List, http.MethodGet, "/dashboard/enquiries?q=RAVI", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeList[enquiry.Enquiry](t, rec)
	assert.True(t, out.Success)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].ID)
	assert.Equal(t, "Bearer "+testCredential, hs.backend.lastAuth)
}

func TestEnquiryStatus_Success(t *testing.T) {
	hs := newHarness(t)
	h := NewEnquiryHandler(hs.store, nil)
	hs.serve(t, "/dashboard/enquiries", h.List, http.MethodGet, "/dashboard/enquiries", nil, "")

	rec := hs.serve(t, "/dashboard/enquiries/:id/status", h.UpdateStatus, http.MethodPatch, "/dashboard/enquiries/1/status",
		[]byte(`{"status":"contacted"}`), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeList[enquiry.Enquiry](t, rec)
	assert.True(t, out.Success)
	assert.Equal(t, enquiry.StatusContacted, out.Items[0].Status)
}

func TestEnquiryStatus_FailureShowsServerTruth(t *testing.T) {
	hs := newHarness(t)
	hs.backend.failStatus = true
	h := NewEnquiryHandler(hs.store, nil)
	hs.serve(t, "/dashboard/enquiries", h.List, http.MethodGet, "/dashboard/enquiries", nil, "")

	rec := hs.serve(t, "/dashboard/enquiries/:id/status", h.UpdateStatus, http.MethodPatch, "/dashboard/enquiries/1/status",
		[]byte(`{"status":"contacted"}`), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeList[enquiry.Enquiry](t, rec)
	assert.False(t, out.Success)
	assert.Equal(t, "Database unavailable", out.Message)
	assert.False(t, out.Stale)
	assert.Equal(t, enquiry.StatusPending, out.Items[0].Status)
	assert.Equal(t, 2, hs.backend.hitCount("GET /api/admin/enquiries"))
}

func TestEnquiryStatus_InvalidStatusRejected(t *testing.T) {
	hs := newHarness(t)
	h := NewEnquiryHandler(hs.store, nil)

	rec := hs.serve(t, "/dashboard/enquiries/:id/status", h.UpdateStatus, http.MethodPatch, "/dashboard/enquiries/1/status",
		[]byte(`{"status":"archived"}`), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, hs.backend.hitCount("PATCH /api/admin/enquiries/1/status"))
}

func TestEnquiryDelete_RemovesAfterConfirmation(t *testing.T) {
	hs := newHarness(t)
	h := NewEnquiryHandler(hs.store, nil)
	hs.serve(t, "/dashboard/enquiries", h.List, http.MethodGet, "/dashboard/enquiries", nil, "")

	rec := hs.serve(t, "/dashboard/enquiries/:id", h.Delete, http.MethodDelete, "/dashboard/enquiries/2", nil, "")
	out := decodeList[enquiry.Enquiry](t, rec)
	assert.True(t, out.Success)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(1), out.Items[0].ID)
}

func TestParseID_Rejected(t *testing.T) {
	hs := newHarness(t)
	h := NewEnquiryHandler(hs.store, nil)

	rec := hs.serve(t, "/dashboard/enquiries/:id", h.Delete, http.MethodDelete, "/dashboard/enquiries/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewHide_AdoptsServerValue(t *testing.T) {
	hs := newHarness(t)
	h := NewReviewHandler(hs.store, nil)
	hs.serve(t, "/dashboard/reviews", h.List, http.MethodGet, "/dashboard/reviews", nil, "")

	rec := hs.serve(t, "/dashboard/reviews/:id/hide", h.Hide, http.MethodPatch, "/dashboard/reviews/7/hide", nil, "")
	out := decodeList[review.Review](t, rec)
	assert.True(t, out.Success)
	assert.True(t, out.Items[0].IsHidden)
}

func TestReviewHide_UnknownItem(t *testing.T) {
	hs := newHarness(t)
	h := NewReviewHandler(hs.store, nil)

	rec := hs.serve(t, "/dashboard/reviews/:id/hide", h.Hide, http.MethodPatch, "/dashboard/reviews/99/hide", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func serviceForm(t *testing.T, title string, galleryCount int) ([]byte, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("title", title))
	require.NoError(t, w.WriteField("long_description", "Fast and clean"))
	require.NoError(t, w.WriteField("category_id", "1"))
	for i := 0; i < galleryCount; i++ {
		part, err := w.CreateFormFile("gallery", fmt.Sprintf("g%d.pdf", i))
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes(), w.FormDataContentType()
}

func TestServiceCreate_GalleryMustHaveFive(t *testing.T) {
	hs := newHarness(t)
	h := NewServiceHandler(hs.store, nil, 0)

	body, ct := serviceForm(t, "Painting", 4)
	rec := hs.serve(t, "/dashboard/services", h.Create, http.MethodPost, "/dashboard/services", body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Exactly 5 images are required")
	assert.Zero(t, hs.backend.hitCount("POST /api/admin/services"))
}

func TestServiceCreate_SendsGalleryAndRefetches(t *testing.T) {
	hs := newHarness(t)
	h := NewServiceHandler(hs.store, nil, 0)

	body, ct := serviceForm(t, "Painting", service.GallerySize)
	rec := hs.serve(t, "/dashboard/services", h.Create, http.MethodPost, "/dashboard/services", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeList[service.Service](t, rec)
	assert.True(t, out.Success)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, service.GallerySize, hs.backend.galleryParts)
}

func serviceByID(t *testing.T, items []service.Service, id int64) service.Service {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("service %d missing", id)
	return service.Service{}
}

func TestServiceUpdate_PartialGalleryRejected(t *testing.T) {
	hs := newHarness(t)
	h := NewServiceHandler(hs.store, nil, 0)

	body, ct := serviceForm(t, "AC Repair", 3)
	rec := hs.serve(t, "/dashboard/services/:id", h.Update, http.MethodPut, "/dashboard/services/3", body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Exactly 5 images are required")
	assert.Zero(t, hs.backend.hitCount("PUT /api/admin/services/3"))
}

func TestServiceUpdate_KeepsGalleryWhenNoneSent(t *testing.T) {
	hs := newHarness(t)
	h := NewServiceHandler(hs.store, nil, 0)

	body, ct := serviceForm(t, "AC Repair", 0)
	rec := hs.serve(t, "/dashboard/services/:id", h.Update, http.MethodPut, "/dashboard/services/3", body, ct)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeList[service.Service](t, rec).Success)
	assert.Equal(t, 1, hs.backend.hitCount("PUT /api/admin/services/3"))
}

func TestServiceToggle_SuccessKeepsTarget(t *testing.T) {
	hs := newHarness(t)
	h := NewServiceHandler(hs.store, nil, 0)
	hs.serve(t, "/dashboard/services", h.List, http.MethodGet, "/dashboard/services", nil, "")

	rec := hs.serve(t, "/dashboard/services/:id/toggle", h.Toggle, http.MethodPatch, "/dashboard/services/3/toggle", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeList[service.Service](t, rec)
	assert.True(t, out.Success)
	assert.False(t, serviceByID(t, out.Items, 3).IsActive)
	assert.True(t, serviceByID(t, out.Items, 4).IsActive)
	assert.Equal(t, 1, hs.backend.hitCount("PATCH /api/admin/services/3/toggle"))
}

func TestServiceToggle_FailureReconciles(t *testing.T) {
	hs := newHarness(t)
	hs.backend.failToggle = true
	h := NewServiceHandler(hs.store, nil, 0)
	hs.serve(t, "/dashboard/services", h.List, http.MethodGet, "/dashboard/services", nil, "")

	rec := hs.serve(t, "/dashboard/services/:id/toggle", h.Toggle, http.MethodPatch, "/dashboard/services/3/toggle", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeList[service.Service](t, rec)
	assert.False(t, out.Success)
	assert.Equal(t, "Could not update status", out.Message)
	assert.True(t, serviceByID(t, out.Items, 3).IsActive)
	assert.Equal(t, 2, hs.backend.hitCount("GET /api/admin/services"))
}

func TestServiceToggle_ColdWorkspaceLoadsList(t *testing.T) {
	hs := newHarness(t)
	h := NewServiceHandler(hs.store, nil, 0)

	rec := hs.serve(t, "/dashboard/services/:id/toggle", h.Toggle, http.MethodPatch, "/dashboard/services/3/toggle", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeList[service.Service](t, rec)
	assert.True(t, out.Success)
	assert.False(t, serviceByID(t, out.Items, 3).IsActive)
	assert.Equal(t, 1, hs.backend.hitCount("PATCH /api/admin/services/3/toggle"))
}

func TestBlogToggle(t *testing.T) {
	hs := newHarness(t)
	h := NewBlogHandler(hs.store, nil, nil, 0)

	rec := hs.serve(t, "/dashboard/blogs/:id/toggle", h.Toggle, http.MethodPatch, "/dashboard/blogs/b1/toggle", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeList[blog.Blog](t, rec)
	assert.True(t, out.Success)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].IsPublished)

	hs.backend.mu.Lock()
	hs.backend.failToggle = true
	hs.backend.mu.Unlock()

	rec = hs.serve(t, "/dashboard/blogs/:id/toggle", h.Toggle, http.MethodPatch, "/dashboard/blogs/b1/toggle", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	out = decodeList[blog.Blog](t, rec)
	assert.False(t, out.Success)
	assert.Equal(t, "Could not update status", out.Message)
	assert.True(t, out.Items[0].IsPublished)
}

func TestBlogToggle_UnknownBlog(t *testing.T) {
	hs := newHarness(t)
	h := NewBlogHandler(hs.store, nil, nil, 0)

	rec := hs.serve(t, "/dashboard/blogs/:id/toggle", h.Toggle, http.MethodPatch, "/dashboard/blogs/nope/toggle", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, hs.backend.hitCount("PATCH /api/admin/blogs/nope/toggle"))
}

func TestServiceList_FiltersByCategory(t *testing.T) {
	hs := newHarness(t)
	h := NewServiceHandler(hs.store, nil, 0)

	rec := hs.serve(t, "/dashboard/services", h.List, http.MethodGet, "/dashboard/services?category=Home", nil, "")
	out := decodeList[service.Service](t, rec)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Plumbing", out.Items[0].Title)
}

func TestBlogGet_NotFound(t *testing.T) {
	hs := newHarness(t)
	h := NewBlogHandler(hs.store, nil, nil, 0)

	rec := hs.serve(t, "/dashboard/blogs/:id", h.Get, http.MethodGet, "/dashboard/blogs/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), msgBlogNotFound)
}

func TestDashboardStats(t *testing.T) {
	hs := newHarness(t)
	h := NewDashboardHandler(hs.store)

	rec := hs.serve(t, "/dashboard", h.Stats, http.MethodGet, "/dashboard", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"enquiries":2`)
	assert.Contains(t, rec.Body.String(), `"offline":false`)

	hs.backend.mu.Lock()
	hs.backend.dashboardDown = true
	hs.backend.mu.Unlock()

	rec = hs.serve(t, "/dashboard", h.Stats, http.MethodGet, "/dashboard", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"offline":true`)
}

func TestNotifications_MarkSeenDerivesTotal(t *testing.T) {
	hs := newHarness(t)
	h := NewNotificationHandler(hs.store, nil)

	ws := hs.store.Open(testCredential)
	require.Eventually(t, func() bool {
		return ws.Notifications.Counts().Total() == 3
	}, 2*time.Second, 10*time.Millisecond)

	rec := hs.serve(t, "/dashboard/notifications/:type", h.MarkSeen, http.MethodPatch, "/dashboard/notifications/reviews", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out NotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, 0, out.Counts.Reviews)
	assert.Equal(t, 1, out.Counts.Total)
	assert.Equal(t, 1, hs.backend.hitCount("PATCH /api/admin/notifications/reviews"))
}

func TestNotifications_InvalidType(t *testing.T) {
	hs := newHarness(t)
	h := NewNotificationHandler(hs.store, nil)

	rec := hs.serve(t, "/dashboard/notifications/:type", h.MarkSeen, http.MethodPatch, "/dashboard/notifications/blogs", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryCreate_RequiresTitle(t *testing.T) {
	hs := newHarness(t)
	h := NewCategoryHandler(hs.store, nil)

	rec := hs.serve(t, "/dashboard/categories", h.Create, http.MethodPost, "/dashboard/categories", []byte(`{"title":"  "}`), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = hs.serve(t, "/dashboard/categories", h.Create, http.MethodPost, "/dashboard/categories", []byte(`{"title":"x","extra":1}`), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = hs.serve(t, "/dashboard/categories", h.Create, http.MethodPost, "/dashboard/categories", []byte(`title=x`), "text/plain")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestWorkspace_RejectedCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid token"}`))
	}))
	t.Cleanup(srv.Close)

	client := backend.New(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)
	store := session.NewStore(context.Background(), client, notify.NewScheduler(), time.Minute, time.Hour, nil)
	t.Cleanup(store.Stop)
	hs := &harness{e: echo.New(), backend: newFakeBackend(), store: store}
	h := NewEnquiryHandler(store, nil)

	rec := hs.serve(t, "/dashboard/enquiries", h.List, http.MethodGet, "/dashboard/enquiries", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, store.Len())
}

func TestHandleHTTPError_MapsBackendErrors(t *testing.T) {
	e := echo.New()
	client := backend.New(config.BackendConfig{}, nil)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_, err := client.For(testCredential).Contact(context.Background())
	require.Error(t, err)

	require.NoError(t, handleHTTPError(c, err))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "API URL not configured"))
}
