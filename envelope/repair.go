package envelope

import (
	"encoding/json"
	"strings"

	"github.com/habiliai/agenteval/entity"
	"github.com/habiliai/agenteval/errors"
	"github.com/mitchellh/mapstructure"
)

const UnknownFrameworkName = "unknown"

// RepairEvalResult rebuilds an EvalResult field by field from whatever raw
// holds. Missing or undecodable scores become 0, a missing framework name
// becomes "unknown". Scores are clamped to [0,1]. It never fails.
func RepairEvalResult(raw any) entity.EvalResult {
	m := UnwrapDefault(raw)

	res := entity.EvalResult{
		FrameworkName:     stringField(m, "framework_name"),
		ScoreCompleteness: floatField(m, "score_completeness"),
		ScoreDeterminism:  floatField(m, "score_determinism"),
		ScoreFit:          floatField(m, "score_fit"),
		OverallScore:      floatField(m, "overall_score"),
		Notes:             stringField(m, "notes"),
	}
	if strings.TrimSpace(res.FrameworkName) == "" {
		res.FrameworkName = UnknownFrameworkName
	}
	res.Normalize()

	return res
}

// RepairVerdict decodes a recommendation verdict. ok is false when the payload
// carries no usable adopt_worthwhile flag.
func RepairVerdict(raw any) (verdict entity.RecommendationVerdict, ok bool) {
	m := UnwrapDefault(raw)

	v, exists := m["adopt_worthwhile"]
	if !exists || v == nil {
		return verdict, false
	}
	if err := mapstructure.WeakDecode(v, &verdict.AdoptWorthwhile); err != nil {
		return verdict, false
	}
	verdict.Confidence = entity.Clamp01(floatField(m, "confidence"))
	verdict.Reasoning = stringField(m, "reasoning")

	return verdict, true
}

// Decode unwraps raw and decodes the payload into out, matching keys by json
// tag and accepting loosely typed values ("0.8" for a float and so on).
func Decode(raw any, out any) error {
	m := UnwrapDefault(raw)
	if len(m) == 0 {
		return errors.Wrapf(errors.ErrEmptyResult, "no payload to decode")
	}
	return DecodeMap(m, out)
}

// DecodeMap decodes m into out the same way Decode does, without unwrapping.
func DecodeMap(m map[string]any, out any) error {
	// Round trip so nested Go values (structs, typed slices) become plain JSON values.
	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrMalformedResult, "failed to marshal payload: %v", err)
	}
	var plain map[string]any
	if err := json.Unmarshal(data, &plain); err != nil {
		return errors.Wrapf(errors.ErrMalformedResult, "failed to unmarshal payload: %v", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if err := decoder.Decode(plain); err != nil {
		return errors.Wrapf(errors.ErrMalformedResult, "failed to decode payload: %v", err)
	}

	return nil
}

func floatField(m map[string]any, key string) float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	var f float64
	if err := mapstructure.WeakDecode(v, &f); err != nil {
		return 0
	}
	return f
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	var s string
	if err := mapstructure.WeakDecode(v, &s); err != nil {
		return ""
	}
	return s
}
