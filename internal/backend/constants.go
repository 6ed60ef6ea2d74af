package backend

const (
	pathLogin         = "/api/admin/login"
	pathCategories    = "/api/admin/categories"
	pathServices      = "/api/admin/services"
	pathBlogs         = "/api/admin/blogs"
	pathReviews       = "/api/admin/reviews"
	pathEnquiries     = "/api/admin/enquiries"
	pathSupport       = "/api/admin/support"
	pathNotifications = "/api/admin/notifications"
	pathContact       = "/api/contact"
	pathDashboard     = "/api/dashboard"

	contentTypeJSON = "application/json"
	headerAccept    = "Accept"
	headerType      = "Content-Type"

	maxErrorBodyBytes = 4096
)

const (
	msgNotConfigured    = "API URL not configured"
	msgUnreachable      = "Backend unreachable"
	msgTimedOut         = "Backend request timed out"
	msgDecodeFailed     = "Unexpected response from backend"
	msgEncodeFailed     = "Failed to encode request"
	msgLoginFailed      = "Login failed"
	msgMissingToken     = "Login response did not include a token"
	msgRequestFailedFmt = "Request failed with status %d"
)
