// Package knowledge turns parsed command-line arguments into typed request
// bodies for the knowledge base API, and derives the follow-up advice shown
// after a call. Validation happens here, before any network traffic: a
// missing required input is a *UsageError.
//
// Optional fields are only set when the user supplied them, so absent
// options never reach the wire as null or empty values.
package knowledge
