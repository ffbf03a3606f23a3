package gemini

import "time"

// describes one image generation request
type Request struct {
	Prompt        string
	Location      string // optional location label used to flavor the prompt
	Style         string // optional style hint
	InputImage    []byte // optional source photo (raw bytes)
	InputMIMEType string // MIME type of InputImage, required when InputImage is set
}

// carries a successful generation
type Result struct {
	ImageData   string // base64-encoded image payload
	MIMEType    string
	Prompt      string // the enriched prompt actually sent
	Model       string
	GeneratedAt time.Time
}

// holds configuration for the Gemini client
type Config struct {
	APIKey     string
	Model      string        // e.g. "gemini-2.5-flash-image-preview"
	MaxRetries int           // additional attempts beyond the first
	BaseDelay  time.Duration // backoff base
	MaxDelay   time.Duration // backoff ceiling
}

// wire format for the generateContent endpoint

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content struct {
		Parts []responsePart `json:"parts"`
	} `json:"content"`
}

type responsePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}
