// Package cors implements the cross-origin middleware that wraps the whole
// router, so that headers are present on every response including router
// level 404 and 405 replies.
//
// A wildcard origin list is advertised as "Access-Control-Allow-Origin: *"
// whether or not the request carries an Origin header. Combined with
// allowed credentials this is a policy browsers reject for credentialed
// requests; Options.Insecure reports it so callers can warn at startup.
package cors
