package normalize

import "github.com/heartmarshall/miskai-core/internal/domain"

// American English: flapping, dark l, unstressed vowel reduction. Reduction
// needs stress-marked input; words without any mark are left as they are.
var americanEnglish = []RuleSpec{
	{Name: "nasal-flap", Target: "n t", Replace: "ɾ̃", Before: "V", After: "V"},
	{Name: "flap-t", Target: "t", Replace: "ɾ", Before: "V", After: "V"},
	{Name: "flap-d", Target: "d", Replace: "ɾ", Before: "V", After: "V"},
	{Name: "dark-l", Target: "l", Replace: "ɫ", Before: "V", After: "C|#"},
	{Name: "reduce-strut", Target: "ʌ", Replace: "ə", Before: "!STRESS", Stressed: true},
	{Name: "reduce-nurse", Target: "ɝ", Replace: "ɚ", Before: "!STRESS", Stressed: true},
}

// British English: non-rhotic, r is dropped unless a vowel follows.
var britishEnglish = []RuleSpec{
	{Name: "non-rhotic", Target: "ɹ", Replace: "", Before: "V", After: "C|#"},
}

// Spanish: voiced stops spirantize between vowels, n assimilates to velars.
var spanish = []RuleSpec{
	{Name: "spirant-b", Target: "b", Replace: "β", Before: "V", After: "V"},
	{Name: "spirant-d", Target: "d", Replace: "ð", Before: "V", After: "V"},
	{Name: "spirant-g", Target: "ɡ", Replace: "ɣ", Before: "V", After: "V"},
	{Name: "velar-n", Target: "n", Replace: "ŋ", After: "k|ɡ|x"},
}

// BuiltinRuleSets returns fresh copies of the built-in rule sets.
func BuiltinRuleSets() []*RuleSet {
	return []*RuleSet{
		MustCompileRuleSet(domain.Language("en-us"), nil, americanEnglish),
		MustCompileRuleSet(domain.Language("en-gb"), nil, britishEnglish),
		MustCompileRuleSet(domain.Language("es"), nil, spanish),
	}
}
