// Package api is the HTTP client for the Prior knowledge base. Every call
// returns a Response whose Kind records whether the body was JSON at all;
// HTTP status codes are not inspected, callers read the remote ok/error
// fields instead.
package api
