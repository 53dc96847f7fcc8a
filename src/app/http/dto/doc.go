// Package dto contains the request and response bodies of the HTTP API.
//
// Request types are named <Action><Resource>Request and carry gin binding
// tags. Domain entities already serialize cleanly, so responses only get a
// DTO when they reshape data.
package dto
