// Package handler implements the HTTP API of skillindex.
//
// # Routes
//
//	GET  /api/categories               taxonomy with stored counts
//	GET  /api/classifications          stored classifications, ?category= filter
//	GET  /api/classifications/{id...}  one stored classification
//	POST /api/classify                 classify an ad hoc entry
//	POST /api/rebuild                  sync the index, ?force=true to ignore the fingerprint
//	GET  /api/runs/latest              most recent run
//
// # Response Format
//
// Success responses return JSON data. Error responses return JSON with an
// {error, details} structure and a matching status code: 400 for bad input,
// 404 when a record or the store is missing, 422 when the skills index is
// empty, 500 otherwise.
//
// Middleware provides panic recovery, CORS and request logging.
package handler
