// Package intent derives structured intent from a free-text query by
// lowercased substring match against closed vocabularies. Extraction is
// ephemeral per request and never fails: every field has a default.
package intent

import "strings"

// Intent is the tuple derived from a query.
type Intent struct {
	Role            string
	Skills          []string
	ExperienceLevel string
	Location        string
	Background      string
}

// rolePattern maps query substrings to a canonical role name. Order matters:
// the first match wins.
type rolePattern struct {
	substrings []string
	role       string
}

var rolePatterns = []rolePattern{
	{[]string{"data scientist", "data science"}, "Data Scientist"},
	{[]string{"software engineer", "software developer"}, "Software Engineer"},
	{[]string{"machine learning", "ml engineer"}, "Machine Learning Engineer"},
	{[]string{"data analyst"}, "Data Analyst"},
	{[]string{"product manager"}, "Product Manager"},
	{[]string{"devops"}, "DevOps Engineer"},
}

// DefaultRole is assumed when no role vocabulary entry matches.
const DefaultRole = "Software Engineer"

var skillVocabulary = []string{
	"python", "java", "javascript", "typescript", "react", "angular",
	"vue", "node.js", "django", "flask", "spring", "tensorflow",
	"pytorch", "scikit-learn", "pandas", "numpy", "aws", "azure",
	"gcp", "docker", "kubernetes", "terraform", "ansible", "jenkins",
	"git", "sql", "nosql", "mongodb", "postgresql", "mysql",
}

// JobLocations is the location vocabulary for job queries.
var JobLocations = []string{"us", "uk", "canada", "australia", "india", "remote"}

// EventLocations is the wider location vocabulary for event queries.
var EventLocations = []string{"us", "uk", "canada", "australia", "india", "europe", "asia"}

var backgroundVocabulary = []struct {
	keywords   []string
	background string
}{
	{[]string{"non-tech", "non technical", "different field"}, "non-tech"},
	{[]string{"student", "graduate", "university"}, "student"},
	{[]string{"self taught", "self-taught", "bootcamp"}, "self-taught"},
	{[]string{"switch", "transition", "change career"}, "career-switch"},
}

// Extract derives the full intent tuple from a query.
func Extract(query string) Intent {
	return Intent{
		Role:            Role(query),
		Skills:          Skills(query),
		ExperienceLevel: Level(query),
		Location:        Location(query, JobLocations),
		Background:      Background(query),
	}
}

// Role returns the canonical role matched in the query, or DefaultRole.
func Role(query string) string {
	q := strings.ToLower(query)
	for _, p := range rolePatterns {
		for _, s := range p.substrings {
			if strings.Contains(q, s) {
				return p.role
			}
		}
	}
	return DefaultRole
}

// Skills returns every vocabulary skill found as a substring of the query,
// defaulting to {python} when none match.
func Skills(query string) []string {
	q := strings.ToLower(query)
	var found []string
	for _, skill := range skillVocabulary {
		if strings.Contains(q, skill) {
			found = append(found, skill)
		}
	}
	if len(found) == 0 {
		return []string{"python"}
	}
	return found
}

// Level returns "senior", "mid", or the default "entry".
func Level(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "senior") || strings.Contains(q, "experienced"):
		return "senior"
	case strings.Contains(q, "mid") || strings.Contains(q, "intermediate"):
		return "mid"
	default:
		return "entry"
	}
}

// Location returns the first vocabulary location found in the query in
// title case, or "global".
func Location(query string, candidates []string) string {
	q := strings.ToLower(query)
	for _, loc := range candidates {
		if strings.Contains(q, loc) {
			return titleCase(loc)
		}
	}
	return "global"
}

// Background returns the matched background category, or "".
func Background(query string) string {
	q := strings.ToLower(query)
	for _, b := range backgroundVocabulary {
		for _, kw := range b.keywords {
			if strings.Contains(q, kw) {
				return b.background
			}
		}
	}
	return ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
