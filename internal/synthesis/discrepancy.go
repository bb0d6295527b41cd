package synthesis

import (
	"fmt"
	"regexp"
	"strings"
)

// negationPairs are positive/negative phrasing pairs checked in both
// directions between claim and evidence
var negationPairs = [][2]string{
	{"is", "is not"},
	{"was", "was not"},
	{"has", "has not"},
	{"have", "have not"},
	{"did", "did not"},
	{"does", "does not"},
	{"will", "will not"},
	{"can", "cannot"},
	{"true", "false"},
	{"yes", "no"},
	{"confirmed", "denied"},
	{"increased", "decreased"},
	{"rose", "fell"},
	{"won", "lost"},
}

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// HighlightDiscrepancies flags the specific sub-strings where refuting
// evidence contradicts the claim: negation-pair mismatches and numbers
// appearing in the claim but absent from the evidence. Falls back to a
// generic note when nothing specific matches.
func HighlightDiscrepancies(claimText, evidenceText string) []string {
	claimLower := " " + strings.ToLower(claimText) + " "
	evidenceLower := " " + strings.ToLower(evidenceText) + " "

	var discrepancies []string

	for _, pair := range negationPairs {
		positive := " " + pair[0] + " "
		negative := " " + pair[1] + " "
		// A text holding the negative form also holds the positive as a
		// substring ("is not" contains "is"), so the positive side must
		// additionally be free of the negative form.
		claimPositive := strings.Contains(claimLower, positive) && !strings.Contains(claimLower, negative)
		evidencePositive := strings.Contains(evidenceLower, positive) && !strings.Contains(evidenceLower, negative)
		switch {
		case claimPositive && strings.Contains(evidenceLower, negative):
			discrepancies = append(discrepancies,
				fmt.Sprintf("Claim states %q but evidence shows %q", pair[0], pair[1]))
		case strings.Contains(claimLower, negative) && evidencePositive:
			discrepancies = append(discrepancies,
				fmt.Sprintf("Claim states %q but evidence shows %q", pair[1], pair[0]))
		}
	}

	evidenceNumbers := make(map[string]bool)
	for _, n := range numberRe.FindAllString(evidenceText, -1) {
		evidenceNumbers[n] = true
	}
	for _, n := range numberRe.FindAllString(claimText, -1) {
		if len(evidenceNumbers) > 0 && !evidenceNumbers[n] {
			discrepancies = append(discrepancies,
				fmt.Sprintf("Claim cites the figure %s, which does not appear in the evidence", n))
		}
	}

	if len(discrepancies) == 0 {
		discrepancies = append(discrepancies, "Evidence contradicts the claim")
	}
	return discrepancies
}
