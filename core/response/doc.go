// Package response provides handler.Response constructors for plain text, JSON,
// redirects, and status-carrying errors.
package response
