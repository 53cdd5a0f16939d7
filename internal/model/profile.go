// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the BuzzLink transcript.
package model

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Fallback values for optional profile fields.
const (
	// DefaultImageURL is the placeholder image used when a profile has no picture.
	DefaultImageURL = "https://via.placeholder.com/150"

	// NoSummaryText is shown when a profile has neither a summary nor a headline.
	NoSummaryText = "No summary available"

	// DefaultLinkURL is the inert href used when a profile has no LinkedIn URL.
	DefaultLinkURL = "#"

	// UnknownName is used when the backend sends a profile without a name.
	UnknownName = "Unknown"
)

// Profile is a normalized alumni record.
// ID and Name are always non-empty; ImageURL, Summary and LinkedInURL always hold
// either real data or one of the fallback values above.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url"`
	Summary     string `json:"summary"`
	LinkedInURL string `json:"linkedin_url"`
}

// ProfileFields is the raw, possibly incomplete input to NewProfile.
type ProfileFields struct {
	ID          string
	Name        string
	ImageURL    string
	Headline    string
	Summary     string
	LinkedInURL string
}

// Fallbacks configures the values substituted for missing profile fields.
// Zero fields fall back to the package defaults. A missing LinkedIn URL always
// becomes DefaultLinkURL so HasLink stays meaningful.
type Fallbacks struct {
	ImageURL  string
	NoSummary string
}

// DefaultFallbacks returns the package default fallback values.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		ImageURL:  DefaultImageURL,
		NoSummary: NoSummaryText,
	}
}

func (f Fallbacks) withDefaults() Fallbacks {
	d := DefaultFallbacks()
	if f.ImageURL == "" {
		f.ImageURL = d.ImageURL
	}
	if f.NoSummary == "" {
		f.NoSummary = d.NoSummary
	}
	return f
}

// NewProfile builds a Profile from raw fields, applying fallbacks for anything
// missing. Summary falls back to Headline before the no-summary text.
func NewProfile(in ProfileFields, fb Fallbacks) Profile {
	fb = fb.withDefaults()

	p := Profile{
		ID:          present(in.ID),
		Name:        present(in.Name),
		ImageURL:    present(in.ImageURL),
		Summary:     present(in.Summary),
		LinkedInURL: present(in.LinkedInURL),
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Name == "" {
		p.Name = UnknownName
	}
	if p.ImageURL == "" {
		p.ImageURL = fb.ImageURL
	}
	if p.Summary == "" {
		p.Summary = present(in.Headline)
	}
	if p.Summary == "" {
		p.Summary = fb.NoSummary
	}
	if p.LinkedInURL == "" {
		p.LinkedInURL = DefaultLinkURL
	}
	return p
}

// HasLink reports whether the profile links somewhere real.
func (p Profile) HasLink() bool {
	return p.LinkedInURL != "" && p.LinkedInURL != DefaultLinkURL
}

// present trims v, composes it to NFC and maps the scraper's "Unknown"
// marker to empty.
func present(v string) string {
	v = norm.NFC.String(strings.TrimSpace(v))
	if strings.EqualFold(v, "unknown") {
		return ""
	}
	return v
}
