package dto

// ErrorBody is the stable error payload.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every error answer.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
