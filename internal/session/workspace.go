// Package session keeps one in-memory workspace per admin credential: the
// resource lists shown on the dashboard and the notification poller.
package session

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"shree-admin/internal/backend"
	"shree-admin/internal/domain/blog"
	"shree-admin/internal/domain/category"
	"shree-admin/internal/domain/enquiry"
	"shree-admin/internal/domain/review"
	"shree-admin/internal/domain/service"
	"shree-admin/internal/domain/support"
	"shree-admin/internal/mutation"
	"shree-admin/internal/notify"

	"github.com/labstack/echo/v4"
)

// Workspace is the state of one signed-in admin.
type Workspace struct {
	ID  string
	API *backend.API

	Categories *mutation.Controller[category.Category]
	Services   *mutation.Controller[service.Service]
	Blogs      *mutation.Controller[blog.Blog]
	Reviews    *mutation.Controller[review.Review]
	Enquiries  *mutation.Controller[enquiry.Enquiry]
	Support    *mutation.Controller[support.Ticket]

	Notifications *notify.Poller

	lastSeen atomic.Int64
}

func newWorkspace(id string, api *backend.API, scheduler *notify.Scheduler, pollInterval time.Duration, logger echo.Logger) *Workspace {
	return &Workspace{
		ID:  id,
		API: api,
		// Category and service edits change ordering and derived fields
		// server-side, so their lists are always reloaded after a change.
		Categories: mutation.New(api.ListCategories, mutation.WithRefetchOnSuccess(), mutation.WithLogger(logger, "categories")),
		Services:   mutation.New(api.ListServices, mutation.WithRefetchOnSuccess(), mutation.WithLogger(logger, "services")),
		Blogs:      mutation.New(api.ListBlogs, mutation.WithLogger(logger, "blogs")),
		Reviews:    mutation.New(api.ListReviews, mutation.WithLogger(logger, "reviews")),
		Enquiries:  mutation.New(api.ListEnquiries, mutation.WithLogger(logger, "enquiries")),
		Support:    mutation.New(api.ListSupport, mutation.WithLogger(logger, "support")),

		Notifications: notify.NewPoller(api, scheduler, pollInterval, logger),
	}
}

func (w *Workspace) touch(now time.Time) {
	w.lastSeen.Store(now.UnixNano())
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, w.lastSeen.Load()))
}

func (w *Workspace) close() {
	w.Notifications.Stop()
}

// Int64Key formats numeric ids the way the domain ItemKey methods do.
func Int64Key(id int64) string {
	return strconv.FormatInt(id, 10)
}

// RefreshAll loads every list, for example right after login.
func (w *Workspace) RefreshAll(ctx context.Context) {
	w.Categories.Refresh(ctx)
	w.Services.Refresh(ctx)
	w.Blogs.Refresh(ctx)
	w.Reviews.Refresh(ctx)
	w.Enquiries.Refresh(ctx)
	w.Support.Refresh(ctx)
}
