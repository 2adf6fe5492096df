package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Client abstracts inference providers for resume feedback.
type Client interface {
	Feedback(ctx context.Context, input FeedbackInput) (*Response, error)
}

// FeedbackInput captures the inputs for one feedback request.
type FeedbackInput struct {
	ResumeText   string
	Instructions string
}

// Response is the provider's answer envelope.
type Response struct {
	Message Message `json:"message"`
}

// Message wraps the polymorphic content payload.
type Message struct {
	Content Content `json:"content"`
}

// ContentPart is one element of the sequence-shaped content variant.
type ContentPart struct {
	Text string `json:"text"`
}

// Content is a two-variant union: either a plain string or a sequence of
// parts whose first element carries the text. Providers differ in which
// shape they produce; both must round-trip through JSON unchanged.
type Content struct {
	text   string
	parts  []ContentPart
	isText bool
}

// TextContent builds the string variant.
func TextContent(text string) Content {
	return Content{text: text, isText: true}
}

// PartsContent builds the sequence variant.
func PartsContent(parts ...ContentPart) Content {
	return Content{parts: parts}
}

// UnmarshalJSON accepts either content shape and rejects everything else.
func (c *Content) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*c = TextContent(text)
		return nil
	}
	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err == nil {
		*c = PartsContent(parts...)
		return nil
	}
	return errors.New("content is neither a string nor a text sequence")
}

// MarshalJSON preserves the original variant.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.isText {
		return json.Marshal(c.text)
	}
	return json.Marshal(c.parts)
}

// ErrEmptyResponse is returned when the provider produced no answer.
var ErrEmptyResponse = errors.New("inference returned no answer")

// Text normalizes the envelope to a single raw text value. Downstream
// validation never sees the union; ambiguity stops here.
func (r *Response) Text() (string, error) {
	if r == nil {
		return "", ErrEmptyResponse
	}
	c := r.Message.Content
	if c.isText {
		if c.text == "" {
			return "", ErrEmptyResponse
		}
		return c.text, nil
	}
	if len(c.parts) > 0 {
		if c.parts[0].Text == "" {
			return "", ErrEmptyResponse
		}
		return c.parts[0].Text, nil
	}
	return "", fmt.Errorf("unrecognized content shape")
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Feedback returns ErrNotImplemented.
func (PlaceholderClient) Feedback(ctx context.Context, input FeedbackInput) (*Response, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
