// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatapi provides the HTTP client for the BuzzLink chat endpoint.
//
// The endpoint is a single POST /chat call. Its response is an envelope whose
// "response" field is itself a JSON document; the client decodes both layers
// and returns a normalized model.Reply.
//
// # Backend Contract
//
// Request:
//
//	POST /chat
//	Content-Type: application/json
//	Accept: application/json
//
//	{"message": "Find alumni in software engineering"}
//
// Response envelope:
//
//	{"response": "<inner JSON>", "profiles": [{"id": "1", "name": "A. Lee", ...}]}
//
// Inner payload (the only accepted schema):
//
//	{"summary": "...", "highlights": ["..."], "recommendations": [{"name": "...", "relevance": "..."}]}
//
// Any other inner shape is rejected as a malformed response.
//
// # Key Types
//
//   - Client: HTTP client for the chat endpoint
//   - ClientError: Typed error with ErrorType (network, malformed, canceled)
//   - Envelope, InnerResponse, WireProfile: wire types
//   - Normalizer: converts wire data into model.Reply
//
// # Usage
//
//	client := chatapi.NewClient()
//	reply, err := client.SendMessage(ctx, "Find alumni in software engineering")
//	if chatapi.IsNetwork(err) {
//	    // endpoint down or non-2xx
//	}
package chatapi
