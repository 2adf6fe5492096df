package resumes

import (
	"encoding/json"
	"time"
)

// ResumeRecord is the unit of work: one resume submission and, eventually,
// its feedback report. It is persisted as JSON under `resume:{id}`.
type ResumeRecord struct {
	ID             string        `json:"id"`
	UserID         string        `json:"userId,omitempty"`
	ResumePath     string        `json:"resumePath"`
	ImagePath      string        `json:"imagePath"`
	CompanyName    string        `json:"companyName,omitempty"`
	JobTitle       string        `json:"jobTitle,omitempty"`
	JobDescription string        `json:"jobDescription,omitempty"`
	Feedback       FeedbackState `json:"feedback"`
	CreatedAt      time.Time     `json:"createdAt,omitzero"`
}

// FeedbackState is a two-variant union: pending (no report yet) or a
// populated FeedbackReport. On the wire pending is the empty-string
// sentinel, so records written by older clients still parse.
type FeedbackState struct {
	report *FeedbackReport
}

// Populated wraps a report in the populated variant.
func Populated(report FeedbackReport) FeedbackState {
	return FeedbackState{report: &report}
}

// Pending reports whether no feedback has been stored yet.
func (f FeedbackState) Pending() bool {
	return f.report == nil
}

// Report returns the populated report, or false while pending.
func (f FeedbackState) Report() (FeedbackReport, bool) {
	if f.report == nil {
		return FeedbackReport{}, false
	}
	return *f.report, true
}

// MarshalJSON writes the empty-string sentinel while pending.
func (f FeedbackState) MarshalJSON() ([]byte, error) {
	if f.report == nil {
		return json.Marshal("")
	}
	return json.Marshal(f.report)
}

// UnmarshalJSON accepts the sentinel or a report object.
func (f *FeedbackState) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		*f = FeedbackState{}
		return nil
	}
	var report FeedbackReport
	if err := json.Unmarshal(data, &report); err != nil {
		return err
	}
	*f = FeedbackState{report: &report}
	return nil
}

// TipType is a closed enumeration: a tip either praises or asks for change.
type TipType string

const (
	TipGood    TipType = "good"
	TipImprove TipType = "improve"
)

// ATSTip is headline-only; ATS tips carry no explanation.
type ATSTip struct {
	Type TipType `json:"type"`
	Tip  string  `json:"tip"`
}

// Tip carries a headline and its detailed explanation.
type Tip struct {
	Type        TipType `json:"type"`
	Tip         string  `json:"tip"`
	Explanation string  `json:"explanation"`
}

// ATSReport scores ATS suitability.
type ATSReport struct {
	Score float64  `json:"score"`
	Tips  []ATSTip `json:"tips"`
}

// CategoryReport scores one feedback category. Tip order is presentation
// order and must be preserved.
type CategoryReport struct {
	Score float64 `json:"score"`
	Tips  []Tip   `json:"tips"`
}

// FeedbackReport is the structured inference result. The overall score and
// category scores are independent numbers; the aggregation rule lives with
// the inference provider.
type FeedbackReport struct {
	OverallScore float64        `json:"overallScore"`
	ATS          ATSReport      `json:"ATS"`
	ToneAndStyle CategoryReport `json:"toneAndStyle"`
	Content      CategoryReport `json:"content"`
	Structure    CategoryReport `json:"structure"`
	Skills       CategoryReport `json:"skills"`
}
