package rest

const (
	// auth
	RouteAuthYandex         = "/auth/yandex"
	RouteAuthYandexLogin    = RouteAuthYandex + "/login"
	RouteAuthYandexCallback = RouteAuthYandex + "/callback"

	// users
	RouteUsers  = "/users/"
	RouteUserMe = "/users/me"
	RouteUser   = "/users/:user_id"

	// audio
	RouteAudioUpload   = "/audio/upload"
	RouteAudioMy       = "/audio/my"
	RouteAudioDownload = "/audio/download/:file_id"
	RouteAudioFile     = "/audio/:file_id"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
