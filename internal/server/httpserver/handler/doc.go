// Package handler provides the HTTP request handlers of the plainsight API.
//
// Every JSON response, success or failure, uses the Response envelope.
// POST /v1/conceal is the exception on success: it streams the encoded
// image itself.
package handler
