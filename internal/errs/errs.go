// Package errs defines the error types returned to API clients.
//
// Every error that leaves a handler is turned into an HTTPError so clients
// always receive the same JSON shape:
//
//	{ "code": "...", "message": "...", "status": 400, "override": false, "errors": [...], "action": null }
//
// Registration failures have their own domain types (CustomerAlreadyExistsError,
// InvalidPostalCodeError) which are translated into HTTPErrors at the HTTP boundary.
package errs
