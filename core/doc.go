// Package core holds the HTTP response primitives shared by every module:
// the Response abstraction, the JSON envelope, HTTP errors with stable keys,
// and field-level validation errors.
package core
