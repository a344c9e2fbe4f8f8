// Package plate normalizes East African vehicle registration plates as read
// by ANPR cameras and classifies them by issuing country.
package plate

import (
	"regexp"
	"strings"
)

// Country is the issuing authority inferred from a plate's shape.
type Country string

const (
	Kenya      Country = "Kenya"
	Uganda     Country = "Uganda"
	Tanzania   Country = "Tanzania"
	Rwanda     Country = "Rwanda"
	Burundi    Country = "Burundi"
	SouthSudan Country = "SouthSudan"
)

// Result is the outcome of normalizing one raw camera read.
type Result struct {
	Valid      bool
	Normalized string
	Original   string
	Country    Country
}

// Strict country patterns, applied to the cleaned upper-cased plate in this
// order.
var countryPatterns = []struct {
	country Country
	re      *regexp.Regexp
}{
	{Kenya, regexp.MustCompile(`^K[A-Z]{2}\d{3}[A-Z]?$`)},
	{Uganda, regexp.MustCompile(`^U[A-Z]{2}\s?\d{3}[A-Z]$`)},
	{Tanzania, regexp.MustCompile(`^T\s?\d{3}\s?[A-Z]{3}$`)},
	{Rwanda, regexp.MustCompile(`^R[A-Z]{2}\s?\d{3}[A-Z]$`)},
	{Burundi, regexp.MustCompile(`^D\s?\d{4}\s?[A-Z]$`)},
	{SouthSudan, regexp.MustCompile(`^SSD\s?\d{3}[A-Z]$`)},
}

// Relaxed shapes accepted by Verify for plates that failed strict matching,
// tolerating short digit runs and a trailing misread.
var verifyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^K[A-Z]{2}\d{1,3}[A-Z0-9]?$`),
	regexp.MustCompile(`^U[A-Z]{2}\s?\d{2,3}[A-Z0-9]$`),
	regexp.MustCompile(`^T\s?\d{3}\s?[A-Z]{3}$`),
	regexp.MustCompile(`^R[A-Z]{2}\s?\d{2,3}[A-Z0-9]$`),
	regexp.MustCompile(`^D\s?\d{4}\s?[A-Z]$`),
	regexp.MustCompile(`^SSD\s?\d{2,3}[A-Z0-9]$`),
}

var kenyaCandidate = regexp.MustCompile(`^K[A-Z]{2}\d{3}[A-Z0-9]?$`)

// Confusable letters the cameras emit where a digit belongs.
var likelyDigit = map[byte]byte{
	'A': '4',
	'B': '8',
	'E': '3',
	'G': '6',
	'S': '5',
	'T': '7',
	'Z': '2',
	'O': '0',
	'Q': '9',
}

// normalizeKenya repairs the common OCR confusions in a Kenyan plate: the
// second and third letters are corrected toward the letters actually issued
// in those positions, and letter-shaped digits are mapped back to digits.
func normalizeKenya(in string) string {
	second := in[1]
	third := in[2]

	if second == 'O' {
		second = 'D'
	}
	switch third {
	case 'I':
		third = 'L'
	case 'O':
		third = 'Q'
	}

	var b strings.Builder
	b.WriteByte('K')
	b.WriteByte(second)
	b.WriteByte(third)
	for i := 3; i < 6 && i < len(in); i++ {
		if d, ok := likelyDigit[in[i]]; ok {
			b.WriteByte(d)
		} else {
			b.WriteByte(in[i])
		}
	}
	if len(in) > 6 {
		b.WriteByte(in[6])
	}
	return b.String()
}

var whitespace = regexp.MustCompile(`\s+`)

// Identify cleans a raw camera read, applies Kenyan OCR repair when the shape
// warrants it, and matches the result against the strict country patterns.
// Reads longer than 7 characters are truncated to 7 unless they start with T,
// since Tanzanian plates legitimately run longer.
func Identify(raw string) Result {
	in := strings.ToUpper(whitespace.ReplaceAllString(raw, ""))
	if len(in) > 7 && !strings.HasPrefix(in, "T") {
		in = in[:7]
	}

	if kenyaCandidate.MatchString(in) {
		in = normalizeKenya(in)
	}

	for _, p := range countryPatterns {
		if p.re.MatchString(in) {
			return Result{Valid: true, Normalized: in, Original: raw, Country: p.country}
		}
	}
	return Result{Valid: false, Normalized: in, Original: raw}
}

// Verify reports whether a read is plausibly a real plate: either it matched
// a strict pattern or its normalized form fits one of the relaxed shapes.
// Used to decide between storing the read and synthesizing a dummy plate.
func Verify(r Result) bool {
	if r.Valid {
		return true
	}
	for _, re := range verifyPatterns {
		if re.MatchString(r.Normalized) {
			return true
		}
	}
	return false
}
