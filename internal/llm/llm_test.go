package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestContentRoundTripPreservesVariant(t *testing.T) {
	text := TextContent("hello")
	data, err := json.Marshal(text)
	if err != nil {
		t.Fatalf("marshal text variant: %v", err)
	}
	if string(data) != `"hello"` {
		t.Fatalf("text variant serialized as %s", data)
	}

	parts := PartsContent(ContentPart{Text: "hello"}, ContentPart{Text: "world"})
	data, err = json.Marshal(parts)
	if err != nil {
		t.Fatalf("marshal parts variant: %v", err)
	}
	if string(data) != `[{"text":"hello"},{"text":"world"}]` {
		t.Fatalf("parts variant serialized as %s", data)
	}
}

func TestContentUnmarshalAcceptsBothShapes(t *testing.T) {
	var c Content
	if err := json.Unmarshal([]byte(`"plain answer"`), &c); err != nil {
		t.Fatalf("unmarshal string shape: %v", err)
	}
	out, _ := json.Marshal(c)
	if string(out) != `"plain answer"` {
		t.Fatalf("string shape did not round-trip: %s", out)
	}

	if err := json.Unmarshal([]byte(`[{"text":"seq answer"}]`), &c); err != nil {
		t.Fatalf("unmarshal sequence shape: %v", err)
	}
	out, _ = json.Marshal(c)
	if string(out) != `[{"text":"seq answer"}]` {
		t.Fatalf("sequence shape did not round-trip: %s", out)
	}
}

func TestContentUnmarshalRejectsOtherShapes(t *testing.T) {
	var c Content
	for _, raw := range []string{`42`, `{"text":"obj"}`, `true`} {
		if err := json.Unmarshal([]byte(raw), &c); err == nil {
			t.Fatalf("unmarshal accepted %s", raw)
		}
	}
}

func TestResponseText(t *testing.T) {
	cases := []struct {
		name    string
		resp    *Response
		want    string
		wantErr error
	}{
		{"nil response", nil, "", ErrEmptyResponse},
		{"string shape", &Response{Message: Message{Content: TextContent("answer")}}, "answer", nil},
		{"empty string shape", &Response{Message: Message{Content: TextContent("")}}, "", ErrEmptyResponse},
		{"sequence shape", &Response{Message: Message{Content: PartsContent(ContentPart{Text: "first"}, ContentPart{Text: "second"})}}, "first", nil},
		{"sequence with empty first part", &Response{Message: Message{Content: PartsContent(ContentPart{Text: ""})}}, "", ErrEmptyResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.resp.Text()
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Text() err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Text() err = %v", err)
			}
			if got != tc.want {
				t.Fatalf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResponseTextEmptySequence(t *testing.T) {
	resp := &Response{Message: Message{Content: PartsContent()}}
	if _, err := resp.Text(); err == nil {
		t.Fatal("empty sequence should not normalize")
	}
}

func TestBuildInstructions(t *testing.T) {
	got := BuildInstructions("Backend Engineer", "Build Go services.")

	for _, want := range []string{
		"The job title is: Backend Engineer",
		"The job description is: Build Go services.",
		`"overallScore"`,
		`"toneAndStyle"`,
		"without the backticks",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("instructions missing %q", want)
		}
	}

	if got != BuildInstructions("Backend Engineer", "Build Go services.") {
		t.Fatal("instructions are not deterministic")
	}
}
