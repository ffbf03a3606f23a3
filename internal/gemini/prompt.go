package gemini

import (
	"fmt"
	"strings"
)

// builds the enriched prompt sent to the model.
//
// With a source photo the model is told to keep the subject intact and only
// swap the scene; without one it falls back to a plain text-to-image prompt.
func buildPrompt(req Request) string {
	var b strings.Builder

	if len(req.InputImage) > 0 {
		b.WriteString("Using the provided photo, keep the person's identity, face, expression and pose exactly as they are, ")
		b.WriteString("and relocate them into a beautiful travel scene")

		if req.Location != "" {
			fmt.Fprintf(&b, " at %s", req.Location)
		}

		b.WriteString(". Blend lighting and perspective naturally. ")
		b.WriteString(req.Prompt)
	} else {
		if req.Location != "" {
			fmt.Fprintf(&b, "Create a beautiful, photorealistic image of %s at %s. ", req.Prompt, req.Location)
		} else {
			fmt.Fprintf(&b, "Create a beautiful, photorealistic image of %s. ", req.Prompt)
		}
	}

	if req.Style != "" {
		fmt.Fprintf(&b, " Style: %s.", req.Style)
	}

	b.WriteString(" High quality, detailed, professional photography, vibrant colors, excellent composition.")

	return b.String()
}
