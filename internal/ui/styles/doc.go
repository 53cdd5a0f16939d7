// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the BuzzLink TUI.

Colors follow the Georgia Tech palette: Tech Gold for the "Buzz" half of the
wordmark and for assistant accents, Navy for the "Link" half and for user
bubbles. All colors use Lip Gloss AdaptiveColor for automatic light/dark
terminal detection; NewThemeWithMode can force either.

# Layout Modes

Theme.GetLayoutMode buckets the terminal width:

	LayoutNarrow - under 60 columns
	LayoutMedium - 60 to 100 columns
	LayoutWide   - over 100 columns

Components size themselves from Theme.ContentWidth.

# Usage

	theme := styles.NewThemeWithMode(cfg.UI.Theme)
	theme.SetSize(msg.Width, msg.Height)
	title := theme.HeaderBuzz.Render("Buzz") + theme.HeaderLink.Render("Link")
*/
package styles
