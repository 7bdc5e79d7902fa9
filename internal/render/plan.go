// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// BuildPlan splits generated text into blank-line delimited sections and
// then into lines. Each line is trimmed and marked as a heading when it
// starts with one of types.HeadingPrefixes. Empty lines are kept.
func BuildPlan(content string) types.RenderPlan {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	prefixes := types.HeadingPrefixes()

	var plan types.RenderPlan
	for i, section := range strings.Split(content, "\n\n") {
		for _, line := range strings.Split(section, "\n") {
			text := strings.TrimSpace(line)
			plan = append(plan, types.RenderEntry{
				Section: i,
				Text:    text,
				Heading: isHeading(text, prefixes),
			})
		}
	}
	return plan
}

func isHeading(text string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}
