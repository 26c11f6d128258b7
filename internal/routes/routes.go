// Package routes defines HTTP route constants for the application.
package routes

// API Routes
const (
	// Root
	RootPath = "/"

	// SSE
	SSEPath = "/sse"

	// Posts
	APIPosts   = "/api/posts"
	APIPost    = "/api/posts/{id}"
	APIPublish = "/api/publish"
	APIPostMD  = "/api/posts/{id}/markdown"

	// Draft session
	APIDraft        = "/api/draft"
	APIDraftPreview = "/api/draft/preview"
	APIDraftImages  = "/api/draft/images"
)
