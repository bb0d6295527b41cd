package extract

import "strings"

const maxQueryLength = 200

// SearchQuery turns a claim into a search query: strips quotes that confuse
// search APIs and truncates at a word boundary.
func SearchQuery(claimText string) string {
	query := strings.TrimSpace(claimText)
	if query == "" {
		return ""
	}

	query = strings.ReplaceAll(query, `"`, "")
	query = strings.ReplaceAll(query, "'", "")

	if len(query) > maxQueryLength {
		query = query[:maxQueryLength]
		if idx := strings.LastIndex(query, " "); idx > 0 {
			query = query[:idx]
		}
	}
	return query
}
