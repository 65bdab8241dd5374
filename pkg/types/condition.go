package domain

import "strings"

// conditionVocabulary maps the local grading words to marketplace codes.
var conditionVocabulary = map[string]ConditionCode{
	"new":          ConditionNew,
	"sealed":       ConditionNew,
	"brand new":    ConditionNew,
	"mint":         ConditionLikeNew,
	"gem mint":     ConditionLikeNew,
	"near mint":    ConditionLikeNew,
	"like new":     ConditionLikeNew,
	"excellent":    ConditionUsedExcellent,
	"very good":    ConditionUsedVeryGood,
	"lightly used": ConditionUsedVeryGood,
	"good":         ConditionUsedGood,
	"played":       ConditionUsedGood,
	"fair":         ConditionUsedAcceptable,
	"acceptable":   ConditionUsedAcceptable,
	"heavily used": ConditionUsedAcceptable,
	"poor":         ConditionForPartsOrNotOK,
	"damaged":      ConditionForPartsOrNotOK,
	"for parts":    ConditionForPartsOrNotOK,
}

var conditionCodes = []ConditionCode{
	ConditionNew,
	ConditionLikeNew,
	ConditionUsedExcellent,
	ConditionUsedVeryGood,
	ConditionUsedGood,
	ConditionUsedAcceptable,
	ConditionForPartsOrNotOK,
}

// ParseCondition maps a local condition word, or a marketplace code, to a
// ConditionCode. Matching ignores case and treats '_' and '-' as spaces.
func ParseCondition(s string) (ConditionCode, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	norm = strings.Join(strings.Fields(norm), " ")
	if norm == "" {
		return "", false
	}

	if code, ok := conditionVocabulary[norm]; ok {
		return code, true
	}
	for _, code := range conditionCodes {
		if strings.ReplaceAll(strings.ToLower(string(code)), "_", " ") == norm {
			return code, true
		}
	}
	return "", false
}
