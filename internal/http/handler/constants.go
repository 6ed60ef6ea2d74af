package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	paramID   = "id"
	paramType = "type"

	queryText     = "q"
	queryCategory = "category"
	queryLimit    = "limit"

	formTitle           = "title"
	formDescription     = "description"
	formLongDescription = "long_description"
	formCategoryID      = "category_id"
	formSlug            = "slug"
	formContent         = "content"
	formImage           = "image"
	formCoverImage      = "cover_image"
	formGallery         = "gallery"

	maxMultipartMemory = 32 << 20
)

const (
	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "Invalid request body"
	msgInvalidID               = "Invalid id"
	msgInvalidForm             = "Invalid form data"
	msgInvalidStatus           = "Invalid status"
	msgInvalidType             = "Invalid notification type"
	msgItemNotFound            = "Item not found"
	msgBlogNotFound            = "Blog not found"
	msgUploadFailed            = "Failed to upload image"
	msgReadUploadFailed        = "Failed to read uploaded file"
	msgLoginRequired           = "Username and password are required"
	msgLoginFailed             = "Login failed"
	msgLoginSuccessful         = "Login successful"
	msgLoggedOut               = "Logged out"
	msgAuditUnavailable        = "Failed to load audit events"
)
