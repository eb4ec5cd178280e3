package errors

type ErrorCode string

const (
	ErrNotFound     ErrorCode = "NotFound"
	ErrInternal     ErrorCode = "Internal"
	ErrInvalidQuery ErrorCode = "InvalidQuery"
	ErrUpstream     ErrorCode = "Upstream"
)
