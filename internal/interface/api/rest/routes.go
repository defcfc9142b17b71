package rest

const (
	// api
	RouteApi = "/api"

	// auth
	RouteAuth     = RouteApi + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"
	RouteProfile  = RouteAuth + "/profile"

	// images
	RouteImages      = RouteApi + "/images"
	RouteImageUpload = RouteImages + "/upload"
	RouteImageResize = RouteImages + "/resize"
	RouteImage       = RouteImages + "/:filename"

	// static
	RouteUploads = "/uploads"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
