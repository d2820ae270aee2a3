// Package upstream fetches JSON documents from the remote list sources.
//
// Requests go through a retryable HTTP client whose retry budget defaults to
// zero, so a failed load surfaces immediately and the caller decides whether
// to try again. Every failure mode (transport, non-2xx status, undecodable
// body) is reported as a *LoadError.
package upstream
