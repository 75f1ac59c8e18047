package domain

import "fmt"

const (
	CodeOrderModification = "ORDER_MODIFICATION_ERROR"
	CodeNetwork           = "NETWORK_ERROR"
	CodeGraphQL           = "GRAPHQL_ERROR"
	CodeEmptyResult       = "EMPTY_RESULT"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeUnknown           = "UNKNOWN"
)

// ErrorResult is the typed failure returned by the order API, or synthesized
// locally when the API could not be reached.
type ErrorResult struct {
	Code    string `json:"errorCode"`
	Message string `json:"message"`
}

func (e *ErrorResult) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ErrorResult) NotModifiable() bool { return e.Code == CodeOrderModification }

func (e *ErrorResult) Network() bool { return e.Code == CodeNetwork }

// Result is either a success carrying an order snapshot (which may be nil for
// "no active order") or a failure. Exactly one of the two is meaningful.
type Result struct {
	Order *Order
	Err   *ErrorResult
}

func Success(o *Order) Result { return Result{Order: o} }

func Failure(code, message string) Result {
	if code == "" {
		code = CodeUnknown
	}
	return Result{Err: &ErrorResult{Code: code, Message: message}}
}

func (r Result) OK() bool { return r.Err == nil }

// Reply is what one round trip to the order API yields: the decoded result and
// the session token the API issued with it, if any.
type Reply struct {
	Token  string
	Result Result
}
