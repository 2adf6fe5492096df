package capability

import (
	"regexp"
	"strings"
)

// Capability says whether a client is worth the cost of a preview image.
type Capability string

const (
	// FullFidelity clients get a rendered preview image.
	FullFidelity Capability = "full_fidelity"
	// Constrained clients skip preview rendering entirely.
	Constrained Capability = "constrained"
)

// Mode selects how the user-agent and viewport signals combine.
type Mode string

const (
	// ModeAny marks the client constrained when either signal fires.
	ModeAny Mode = "any"
	// ModeAll marks the client constrained only when both signals fire.
	ModeAll Mode = "all"
)

// Signals carries the raw client hints captured at submission time.
type Signals struct {
	UserAgent     string
	ViewportWidth int
}

const defaultMaxWidth = 768

var mobileUserAgent = regexp.MustCompile(`(?i)android|webos|iphone|ipod|blackberry|iemobile|opera mini`)

// Classifier decides client capability once per submission. The decision
// must not be re-derived mid-pipeline; callers classify once and carry the
// result.
type Classifier struct {
	Mode     Mode
	MaxWidth int
}

// New builds a Classifier; unknown modes fall back to ModeAny and a
// non-positive maxWidth falls back to the default threshold.
func New(mode string, maxWidth int) Classifier {
	m := ModeAny
	if Mode(strings.ToLower(strings.TrimSpace(mode))) == ModeAll {
		m = ModeAll
	}
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	return Classifier{Mode: m, MaxWidth: maxWidth}
}

// Classify maps client signals to a capability tag.
func (c Classifier) Classify(signals Signals) Capability {
	mobileUA := mobileUserAgent.MatchString(signals.UserAgent)
	// A zero width means the client sent no viewport hint; only a reported
	// small width counts as a constrained signal.
	smallScreen := signals.ViewportWidth > 0 && signals.ViewportWidth <= c.MaxWidth

	constrained := mobileUA || smallScreen
	if c.Mode == ModeAll {
		constrained = mobileUA && smallScreen
	}
	if constrained {
		return Constrained
	}
	return FullFidelity
}
