package normalize

import (
	"regexp"
	"strings"
)

var (
	hashtagRe = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	keywordRe = regexp.MustCompile(`[가-힣a-zA-Z0-9]{2,}`)
	hangulRe  = regexp.MustCompile(`[가-힣]{2,}`)
)

// stopWords is a small curated mixture of common English and Korean
// function words filtered out of keyword candidates.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"이": {}, "그": {}, "저": {}, "것": {}, "수": {}, "등": {},
	"및": {}, "또는": {}, "그리고": {}, "하지만": {}, "에서": {},
	"으로": {}, "에게": {}, "를": {}, "을": {},
}

// ExtractHashtags returns every #tag in the text, lowercased, in order of
// appearance. Duplicates are retained.
func ExtractHashtags(text string) []string {
	if text == "" {
		return nil
	}

	matches := hashtagRe.FindAllString(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m))
	}
	return tags
}

// ExtractKeywords tokenizes free text into lowercase keyword candidates:
// runs of Hangul syllables, Latin letters or digits, at least two long,
// minus stop words. Ordering is first occurrence in the text and
// duplicates are retained; callers decide whether to de-duplicate.
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	matches := keywordRe.FindAllString(strings.ToLower(text), -1)
	keywords := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, stop := stopWords[m]; stop {
			continue
		}
		keywords = append(keywords, m)
	}
	return keywords
}

// ExtractHangul returns Hangul-only tokens of length >= 2, used for
// related-keyword frequency counting.
func ExtractHangul(text string) []string {
	if text == "" {
		return nil
	}
	return hangulRe.FindAllString(text, -1)
}

// TruncateText limits text to maxLength characters. The ellipsis marker
// counts toward the limit, so output never exceeds maxLength. Limits too
// small to hold the marker cut hard instead.
func TruncateText(text string, maxLength int) string {
	if text == "" || maxLength <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}
