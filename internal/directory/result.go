package directory

import "fmt"

// Code is the status of a directory operation. The values follow HTTP semantics.
type Code int

const (
	CodeOk           Code = 200
	CodeRemoved      Code = 204
	CodeBadRequest   Code = 400
	CodeUnauthorized Code = 401
	CodeNotFound     Code = 404
	CodeConflict     Code = 406
	CodeTimeout      Code = 408
	CodeInternal     Code = 500
)

// Result is the outcome of a directory operation.
type Result struct {
	Code    Code
	Message string
}

// IsSuccess reports whether the code is in the 2xx range.
func (r Result) IsSuccess() bool {
	return r.Code >= 200 && r.Code < 300
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return fmt.Sprintf("%d %s", r.Code, r.Message)
}

func ok(msg string) Result           { return Result{Code: CodeOk, Message: msg} }
func removed() Result                { return Result{Code: CodeRemoved, Message: "Removed"} }
func badRequest(msg string) Result   { return Result{Code: CodeBadRequest, Message: msg} }
func unauthorized(msg string) Result { return Result{Code: CodeUnauthorized, Message: msg} }
func notFound(msg string) Result     { return Result{Code: CodeNotFound, Message: msg} }
func conflict(msg string) Result     { return Result{Code: CodeConflict, Message: msg} }
func timeout(msg string) Result      { return Result{Code: CodeTimeout, Message: msg} }
