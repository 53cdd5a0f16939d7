// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the BuzzLink TUI.
//
// Every component holds a *styles.Theme and renders itself through View().
// Components are pure: they read model values and never touch session state.
//
// # Components
//
//   - Header: the BuzzLink wordmark and the active endpoint
//   - MessageBubble: one transcript turn, user on the right, assistant on the left
//   - ProfileCard: a single alumni profile with its outbound Connect link
//   - ResponseList: the caption plus one card per profile, or the empty placeholder
//   - StatusBar: endpoint, turn count, request state and key hints
//   - Welcome: the intro banner shown before the first query
//   - Footer: the copyright line
//   - MarkdownRenderer: glamour rendering of assistant text
//   - ToastManager: short-lived notices shown in place of the footer
//
// # Usage
//
//	theme := styles.NewTheme()
//	list := components.NewResponseList(query, reply.Profiles, theme)
//	list.SetWidth(80)
//	fmt.Println(list.View())
package components
