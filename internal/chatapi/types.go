// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatapi provides the HTTP client for the BuzzLink chat endpoint.
package chatapi

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the request body for the /chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Envelope is the outer JSON object returned by the /chat endpoint.
// Response holds a second, JSON-encoded document (see InnerResponse).
type Envelope struct {
	Response *string       `json:"response"`
	Profiles []WireProfile `json:"profiles"`
}

// InnerResponse is the decoded form of Envelope.Response.
type InnerResponse struct {
	Summary         *string          `json:"summary"`
	Highlights      []string         `json:"highlights"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommendation names one alumnus and why they are relevant.
type Recommendation struct {
	Name      string `json:"name"`
	Relevance string `json:"relevance"`
}

// WireProfile is a profile as sent by the backend. Everything except ID and
// Name is optional.
type WireProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ProfilePic  string `json:"profile_pic,omitempty"`
	Headline    string `json:"headline,omitempty"`
	Summary     string `json:"summary,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
}
