// Package middleware holds the request observation wrapper installed around
// the router: one debug log line and one pair of metrics events per request.
package middleware
