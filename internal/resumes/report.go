package resumes

import (
	"encoding/json"
	"fmt"
)

// ParseReport validates raw inference output against the report contract and
// returns the structured report. Every violation names the offending field
// so operators can see which part of the answer broke.
//
// The contract is strict on both sides of the explanation rule: every
// category tip must carry an explanation, and ATS tips must not.
func ParseReport(raw string) (FeedbackReport, error) {
	var top struct {
		OverallScore *float64        `json:"overallScore"`
		ATS          json.RawMessage `json:"ATS"`
		ToneAndStyle json.RawMessage `json:"toneAndStyle"`
		Content      json.RawMessage `json:"content"`
		Structure    json.RawMessage `json:"structure"`
		Skills       json.RawMessage `json:"skills"`
	}
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return FeedbackReport{}, &MalformedReportError{Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}
	if top.OverallScore == nil {
		return FeedbackReport{}, &MalformedReportError{Field: "overallScore", Reason: "missing or not a number"}
	}

	report := FeedbackReport{OverallScore: *top.OverallScore}

	ats, err := parseATS(top.ATS)
	if err != nil {
		return FeedbackReport{}, err
	}
	report.ATS = ats

	categories := []struct {
		field string
		raw   json.RawMessage
		dst   *CategoryReport
	}{
		{"toneAndStyle", top.ToneAndStyle, &report.ToneAndStyle},
		{"content", top.Content, &report.Content},
		{"structure", top.Structure, &report.Structure},
		{"skills", top.Skills, &report.Skills},
	}
	for _, cat := range categories {
		parsed, err := parseCategory(cat.field, cat.raw)
		if err != nil {
			return FeedbackReport{}, err
		}
		*cat.dst = parsed
	}

	return report, nil
}

func parseATS(raw json.RawMessage) (ATSReport, error) {
	if len(raw) == 0 {
		return ATSReport{}, &MalformedReportError{Field: "ATS", Reason: "missing"}
	}
	var block struct {
		Score *float64          `json:"score"`
		Tips  []json.RawMessage `json:"tips"`
	}
	if err := json.Unmarshal(raw, &block); err != nil {
		return ATSReport{}, &MalformedReportError{Field: "ATS", Reason: "not an object"}
	}
	if block.Score == nil {
		return ATSReport{}, &MalformedReportError{Field: "ATS.score", Reason: "missing or not a number"}
	}
	if block.Tips == nil {
		return ATSReport{}, &MalformedReportError{Field: "ATS.tips", Reason: "missing"}
	}

	report := ATSReport{Score: *block.Score, Tips: make([]ATSTip, 0, len(block.Tips))}
	for i, rawTip := range block.Tips {
		path := fmt.Sprintf("ATS.tips[%d]", i)
		tipType, headline, explanation, err := parseTipFields(path, rawTip)
		if err != nil {
			return ATSReport{}, err
		}
		if explanation != nil {
			return ATSReport{}, &MalformedReportError{Field: path + ".explanation", Reason: "must not be present on ATS tips"}
		}
		report.Tips = append(report.Tips, ATSTip{Type: tipType, Tip: headline})
	}
	return report, nil
}

func parseCategory(field string, raw json.RawMessage) (CategoryReport, error) {
	if len(raw) == 0 {
		return CategoryReport{}, &MalformedReportError{Field: field, Reason: "missing"}
	}
	var block struct {
		Score *float64          `json:"score"`
		Tips  []json.RawMessage `json:"tips"`
	}
	if err := json.Unmarshal(raw, &block); err != nil {
		return CategoryReport{}, &MalformedReportError{Field: field, Reason: "not an object"}
	}
	if block.Score == nil {
		return CategoryReport{}, &MalformedReportError{Field: field + ".score", Reason: "missing or not a number"}
	}
	if block.Tips == nil {
		return CategoryReport{}, &MalformedReportError{Field: field + ".tips", Reason: "missing"}
	}

	report := CategoryReport{Score: *block.Score, Tips: make([]Tip, 0, len(block.Tips))}
	for i, rawTip := range block.Tips {
		path := fmt.Sprintf("%s.tips[%d]", field, i)
		tipType, headline, explanation, err := parseTipFields(path, rawTip)
		if err != nil {
			return CategoryReport{}, err
		}
		if explanation == nil {
			return CategoryReport{}, &MalformedReportError{Field: path + ".explanation", Reason: "missing"}
		}
		report.Tips = append(report.Tips, Tip{Type: tipType, Tip: headline, Explanation: *explanation})
	}
	return report, nil
}

func parseTipFields(path string, raw json.RawMessage) (TipType, string, *string, error) {
	var tip struct {
		Type        *string `json:"type"`
		Tip         *string `json:"tip"`
		Explanation *string `json:"explanation"`
	}
	if err := json.Unmarshal(raw, &tip); err != nil {
		return "", "", nil, &MalformedReportError{Field: path, Reason: "not an object"}
	}
	if tip.Type == nil {
		return "", "", nil, &MalformedReportError{Field: path + ".type", Reason: "missing"}
	}
	tipType := TipType(*tip.Type)
	if tipType != TipGood && tipType != TipImprove {
		return "", "", nil, &MalformedReportError{Field: path + ".type", Reason: fmt.Sprintf("must be %q or %q, got %q", TipGood, TipImprove, *tip.Type)}
	}
	if tip.Tip == nil {
		return "", "", nil, &MalformedReportError{Field: path + ".tip", Reason: "missing"}
	}
	return tipType, *tip.Tip, tip.Explanation, nil
}
