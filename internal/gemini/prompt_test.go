package gemini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_WithSourceImage(t *testing.T) {
	prompt := buildPrompt(Request{
		Prompt:        "make it golden hour",
		Location:      "Kyoto",
		InputImage:    []byte{0x1},
		InputMIMEType: "image/jpeg",
	})

	assert.Contains(t, prompt, "keep the person's identity")
	assert.Contains(t, prompt, "at Kyoto")
	assert.Contains(t, prompt, "make it golden hour")
	assert.Contains(t, prompt, "professional photography")
}

func TestBuildPrompt_TextToImage(t *testing.T) {
	prompt := buildPrompt(Request{
		Prompt:   "a traveler with a backpack",
		Location: "Machu Picchu",
	})

	assert.True(t, strings.HasPrefix(prompt, "Create a beautiful, photorealistic image"))
	assert.Contains(t, prompt, "a traveler with a backpack")
	assert.Contains(t, prompt, "at Machu Picchu")
	assert.NotContains(t, prompt, "identity")
}

func TestBuildPrompt_NoLocation(t *testing.T) {
	prompt := buildPrompt(Request{Prompt: "a red bicycle"})

	assert.Contains(t, prompt, "a red bicycle")
	assert.NotContains(t, prompt, " at .")
}

func TestBuildPrompt_StyleSuffix(t *testing.T) {
	prompt := buildPrompt(Request{
		Prompt: "a lighthouse",
		Style:  "watercolor",
	})

	assert.Contains(t, prompt, "Style: watercolor.")
}
