// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatapi provides the HTTP client for the BuzzLink chat endpoint.
package chatapi

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gt-buzzlink/buzzlink/internal/model"
)

// Section headings used when assembling the reply text.
const (
	HighlightsHeading      = "Key Highlights:"
	RecommendationsHeading = "Recommended Profiles:"
	Bullet                 = "• "
)

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalizer turns wire data into a model.Reply.
// The zero value uses the model package fallbacks.
type Normalizer struct {
	Fallbacks model.Fallbacks
}

// DecodeEnvelope decodes the outer response body.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ClientError{Type: ErrTypeMalformedResponse, Message: "failed to decode envelope", Cause: err}
	}
	if env.Response == nil {
		return nil, &ClientError{Type: ErrTypeMalformedResponse, Message: "envelope has no response field"}
	}
	return &env, nil
}

// DecodeInner decodes the JSON document carried in Envelope.Response.
// Only the summary/highlights/recommendations schema is accepted.
func DecodeInner(raw string) (*InnerResponse, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &ClientError{Type: ErrTypeMalformedResponse, Message: "empty response payload"}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	var inner InnerResponse
	if err := dec.Decode(&inner); err != nil {
		return nil, &ClientError{Type: ErrTypeMalformedResponse, Message: "failed to decode response payload", Cause: err}
	}
	if dec.More() {
		return nil, &ClientError{Type: ErrTypeMalformedResponse, Message: "trailing data after response payload"}
	}
	if inner.Summary == nil {
		return nil, &ClientError{Type: ErrTypeMalformedResponse, Message: "response payload has no summary"}
	}
	return &inner, nil
}

// Normalize decodes the inner payload of env and builds the reply.
func (n Normalizer) Normalize(env *Envelope) (*model.Reply, error) {
	if env == nil || env.Response == nil {
		return nil, &ClientError{Type: ErrTypeMalformedResponse, Message: "envelope has no response field"}
	}

	inner, err := DecodeInner(*env.Response)
	if err != nil {
		return nil, err
	}

	return &model.Reply{
		Text:     FormatText(inner),
		Profiles: n.Profiles(env.Profiles),
	}, nil
}

// Profiles converts wire profiles, applying fallbacks for missing fields.
// The result is never nil.
func (n Normalizer) Profiles(wire []WireProfile) []model.Profile {
	out := make([]model.Profile, 0, len(wire))
	for _, w := range wire {
		out = append(out, model.NewProfile(model.ProfileFields{
			ID:          w.ID,
			Name:        w.Name,
			ImageURL:    w.ProfilePic,
			Headline:    w.Headline,
			Summary:     w.Summary,
			LinkedInURL: w.LinkedInURL,
		}, n.Fallbacks))
	}
	return out
}

// FormatText renders the inner payload as the human-readable reply text:
// the summary, then a highlights section, then a recommendations section.
// Empty sections are left out. The output depends only on the input.
func FormatText(inner *InnerResponse) string {
	if inner == nil {
		return ""
	}

	var sections []string

	if inner.Summary != nil {
		if s := strings.TrimSpace(*inner.Summary); s != "" {
			sections = append(sections, s)
		}
	}

	var highlights []string
	for _, h := range inner.Highlights {
		if h = strings.TrimSpace(h); h != "" {
			highlights = append(highlights, Bullet+h)
		}
	}
	if len(highlights) > 0 {
		sections = append(sections, HighlightsHeading+"\n"+strings.Join(highlights, "\n"))
	}

	var recs []string
	for _, r := range inner.Recommendations {
		name := strings.TrimSpace(r.Name)
		relevance := strings.TrimSpace(r.Relevance)
		switch {
		case name == "":
			continue
		case relevance == "":
			recs = append(recs, Bullet+name)
		default:
			recs = append(recs, Bullet+name+": "+relevance)
		}
	}
	if len(recs) > 0 {
		sections = append(sections, RecommendationsHeading+"\n"+strings.Join(recs, "\n"))
	}

	return strings.Join(sections, "\n\n")
}
