package messages

// Internal error formats.
const (
	BadStatusCodeMsg = "API returned status code %d on URL %s"
	FailedToParseMsg = "failed to parse API response"
	FiltersNotNil    = "filters can't be nil"
	RequestFailedMsg = "API request failed on URL %s"
)

// Stable error codes returned to API consumers.
const (
	CodeBadRequest    = "bad_request"
	CodeNotFound      = "not_found"
	CodeRateLimited   = "rate_limited"
	CodeTimeout       = "timeout"
	CodeUnavailable   = "upstream_unavailable"
	CodeStorage       = "storage_error"
	CodeInProgress    = "sync_in_progress"
	CodeInternalError = "internal_error"
)

// Stable error messages returned to API consumers.
const (
	MissingParameter    = "missing required parameter %s"
	InvalidPage         = "page must be a positive integer"
	MissingBody         = "request body is missing or malformed"
	InvalidParameters   = "invalid request parameters"
	NotFound            = "resource not found"
	RateLimited         = "upstream rate limit reached, retry later"
	Timeout             = "the request timed out"
	Unavailable         = "upstream service temporarily unavailable"
	StorageUnavailable  = "storage unavailable"
	OperationInProgress = "operation already in progress, please wait"
	InternalError       = "internal server error"
	TooManyRequests     = "too many requests"
)
