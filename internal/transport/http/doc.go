// Package http implements the read-only HTTP surface of moviecli.
// Handlers are thin: they parse the request, read the precomputed analysis
// result and render it. All computation happens in the services package.
//
// # Routes
//
//	GET /healthz                               liveness
//	GET /healthz/ready                         readiness (503 until a result exists)
//	GET /healthz/live                          runtime details
//	GET /metrics                               Prometheus metrics
//	GET /api/v1/version                        build information
//	GET /api/v1/genres/revenue                 summary as JSON
//	GET /api/v1/movies/sample?limit=n          first n normalized records
//	GET /api/v1/charts/genre-revenue.png       bar chart
//	GET /api/v1/charts/genre-revenue.txt       console chart
//	GET /api/v1/reports/genre-revenue.{csv,json,xlsx}
//
// # Errors
//
// Failures are rendered with go-chi/render as an ErrorResponse whose status
// comes from errors.FromError. Analysis routes answer 503 until the first
// result has been computed.
package http
