// Package readability computes text complexity metrics and produces advisory
// simplifications for passages that read poorly.
package readability

import (
	"regexp"
	"strings"
)

// Flesch Reading Ease coefficients. The score runs roughly 0-100; higher is
// easier to read. Values below ~50 are considered difficult.
const (
	fleschBase          = 206.835
	sentenceLengthCoeff = 1.015
	syllableCoeff       = 84.6
)

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	wordCleaner    = regexp.MustCompile(`[^a-z]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Score returns the Flesch Reading Ease of the text. It is a pure function:
// identical input always yields the identical score. Empty or wordless text
// scores 100 (nothing to read is trivially readable).
func Score(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 100
	}

	sentences := countSentences(text)
	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	score := fleschBase -
		sentenceLengthCoeff*(float64(len(words))/float64(sentences)) -
		syllableCoeff*(float64(syllables)/float64(len(words)))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func countSentences(text string) int {
	count := 0
	for _, part := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// countSyllables estimates syllables by counting vowel groups, with the usual
// silent-e adjustment. A heuristic, but a deterministic one.
func countSyllables(word string) int {
	w := wordCleaner.ReplaceAllString(strings.ToLower(word), "")
	if w == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range w {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count == 0 {
		return 1
	}
	return count
}

// Short texts make the Flesch formula noisy, so IsComplex also applies the
// structural cues the tool has always used: long average word length, a high
// share of long words, and long unbroken blocks.
const (
	minWordsForFlesch   = 15
	complexAvgWordLen   = 6.8
	longWordLen         = 6
	longWordRatioLimit  = 0.3
	runOnBlockWordCount = 35
)

// IsComplex reports whether the text reads below the readability threshold.
func IsComplex(text string, threshold float64) bool {
	words := strings.Fields(text)
	if len(words) < minWordsForFlesch {
		return false
	}

	if Score(text) < threshold {
		return true
	}

	totalLen := 0
	longWords := 0
	for _, w := range words {
		totalLen += len(w)
		if len(w) > longWordLen {
			longWords++
		}
	}
	avgLen := float64(totalLen) / float64(len(words))
	longRatio := float64(longWords) / float64(len(words))

	switch {
	case avgLen > complexAvgWordLen:
		return true
	case longRatio > longWordRatioLimit:
		return true
	case len(words) > runOnBlockWordCount && strings.Count(text, "\n") < 2:
		return true
	}
	return false
}

// redundantPhrases are filler constructions removed outright.
var redundantPhrases = []string{
	"it is important to note that",
	"it should be noted that",
	"it is worth mentioning that",
	"as you can see",
	"as shown above",
	"in order to",
	"for the purpose of",
}

// substitutions maps common over-formal words to plainer equivalents.
// Applied per word, case-insensitively, preserving a leading capital.
var substitutions = map[string]string{
	"utilize":      "use",
	"utilizes":     "uses",
	"utilization":  "use",
	"approximately": "about",
	"demonstrate":  "show",
	"demonstrates": "shows",
	"facilitate":   "help",
	"facilitates":  "helps",
	"subsequently": "later",
	"consequently": "so",
	"additionally": "also",
	"furthermore":  "also",
	"commence":     "start",
	"terminate":    "end",
	"endeavor":     "try",
	"ascertain":    "find out",
	"methodology":  "method",
	"numerous":     "many",
	"sufficient":   "enough",
}

// conjunctionSplits are joiners at which an overlong sentence is broken in two.
var conjunctionSplits = []string{
	", and ",
	", but ",
	", which ",
	"; however, ",
	"; ",
}

// Simplify produces a shorter, plainer candidate for the text. The result is
// advisory: callers surface it as a suggested fix and only write it into the
// document when simplification is explicitly enabled.
func Simplify(text string) string {
	out := text

	lower := strings.ToLower(out)
	for _, phrase := range redundantPhrases {
		for {
			idx := strings.Index(lower, phrase)
			if idx < 0 {
				break
			}
			out = out[:idx] + out[idx+len(phrase):]
			lower = strings.ToLower(out)
		}
	}

	words := strings.Fields(out)
	for i, w := range words {
		trimmed := strings.Trim(w, ".,;:!?")
		repl, ok := substitutions[strings.ToLower(trimmed)]
		if !ok {
			continue
		}
		if len(trimmed) > 0 && trimmed[0] >= 'A' && trimmed[0] <= 'Z' {
			repl = strings.ToUpper(repl[:1]) + repl[1:]
		}
		words[i] = strings.Replace(w, trimmed, repl, 1)
	}
	out = strings.Join(words, " ")

	out = splitLongSentences(out)
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(out, " "))
}

// splitLongSentences breaks sentences longer than runOnBlockWordCount words at
// the first available conjunction.
func splitLongSentences(text string) string {
	sentences := splitKeepingDelims(text)
	var sb strings.Builder
	for _, s := range sentences {
		if len(strings.Fields(s)) <= runOnBlockWordCount {
			sb.WriteString(s)
			continue
		}
		split := s
		for _, conj := range conjunctionSplits {
			if idx := strings.Index(s, conj); idx > 0 {
				head := strings.TrimRight(s[:idx], ",;") + ". "
				tail := s[idx+len(conj):]
				if tail != "" {
					tail = strings.ToUpper(tail[:1]) + tail[1:]
				}
				split = head + tail
				break
			}
		}
		sb.WriteString(split)
	}
	return sb.String()
}

// splitKeepingDelims splits text into sentences, keeping each sentence's
// trailing punctuation and whitespace attached.
func splitKeepingDelims(text string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '.' || text[i] == '!' || text[i] == '?' {
			end := i + 1
			for end < len(text) && (text[end] == ' ' || text[end] == '\n') {
				end++
			}
			parts = append(parts, text[start:end])
			start = end
			i = end - 1
		}
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}
