// Package client is the REST transport between the NexusPost CLI and its
// backend.
//
// # Overview
//
//  1. Client is the transport-agnostic contract used by the services:
//     Login, Register, Initialize, GeneratePost, ListPosts and DeletePost.
//  2. HTTPClient implements it over net/http. It resolves paths against a
//     configured base URL, attaches the bearer token from a TokenSource and
//     exchanges JSON.
//
// # Error Handling
//
// Every call is a single attempt. Failures are normalised into:
//
//   - *RequestError for a non-2xx response, carrying the server's message
//     (the "error" field of the body when present);
//   - *NetworkError when no response arrived; it matches ErrUnavailable;
//   - ErrNoToken when an authenticated endpoint is called while logged out.
//     No request is sent in that case.
//
// Use errors.As / errors.Is to classify.
package client
