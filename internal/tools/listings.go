package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Listing is one job posting returned by the listings provider, annotated
// with its women-friendliness analysis.
type Listing struct {
	Title       string `json:"job_title"`
	Employer    string `json:"employer_name"`
	Country     string `json:"job_country"`
	Description string `json:"job_description"`
	ApplyLink   string `json:"job_apply_link"`

	WomenFriendlyScore   float64                      `json:"women_friendly_score"`
	WomenFriendlyAspects []string                     `json:"women_friendly_aspects"`
	Analysis             map[string]DimensionAnalysis `json:"women_friendly_analysis"`
}

// DimensionAnalysis records how one scoring dimension matched a listing.
type DimensionAnalysis struct {
	Score           float64  `json:"score"`
	MaxScore        float64  `json:"max_score"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// ListingsQuery holds the search parameters for the listings provider.
type ListingsQuery struct {
	Query      string
	Location   string
	RemoteOnly bool
	DatePosted string
	Page       int
	NumPages   int
}

// dimension is one axis of the women-friendliness scorer. A dimension's
// contribution is capped at its weight no matter how many keywords match.
type dimension struct {
	name        string
	keywords    []string
	weight      float64
	description string
	patterns    []*regexp.Regexp
}

var scoringDimensions = compileDimensions([]dimension{
	{
		name: "inclusive_policy",
		keywords: []string{
			"diversity", "inclusion", "inclusive", "equal opportunity",
			"gender equality", "gender diversity", "women in tech", "female leadership",
		},
		weight:      5.0,
		description: "Company mentions diversity and inclusion policies",
	},
	{
		name: "flexible_work",
		keywords: []string{
			"flexible hours", "flexible schedule", "work-life balance",
			"remote work", "hybrid work", "work from home",
		},
		weight:      1.5,
		description: "Offers flexible working arrangements",
	},
	{
		name: "parental_benefits",
		keywords: []string{
			"maternity leave", "paternity leave", "parental leave",
			"childcare", "family benefits", "baby care",
		},
		weight:      0.5,
		description: "Provides parental benefits and support",
	},
	{
		name: "career_growth",
		keywords: []string{
			"mentorship", "career development", "growth opportunities",
			"professional development", "training programs", "leadership development",
		},
		weight:      1.5,
		description: "Focuses on career growth and development",
	},
	{
		name: "supportive_culture",
		keywords: []string{
			"supportive", "collaborative", "team-oriented",
			"employee wellbeing", "work culture", "positive environment",
		},
		weight:      0.5,
		description: "Promotes a supportive work culture",
	},
	{
		name: "women_representation",
		keywords: []string{
			"women leadership", "female leaders", "women in management",
			"women-led", "female founder", "women executives",
		},
		weight:      1.0,
		description: "Has women in leadership positions",
	},
})

func compileDimensions(dims []dimension) []dimension {
	for i := range dims {
		for _, kw := range dims[i].keywords {
			p := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			dims[i].patterns = append(dims[i].patterns, p)
		}
	}
	return dims
}

// ListingsClient talks to the hosted job-listings API and scores results
// for women-friendliness.
type ListingsClient struct {
	apiKey     string
	host       string
	baseURL    string
	httpClient *http.Client
}

func NewListingsClient(apiKey, host string) *ListingsClient {
	return &ListingsClient{
		apiKey:     apiKey,
		host:       host,
		baseURL:    "https://" + host + "/search",
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SearchListings queries the provider and returns listings sorted by
// women-friendliness score, highest first.
func (c *ListingsClient) SearchListings(ctx context.Context, q ListingsQuery) ([]Listing, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("listings provider credential not configured")
	}

	location := q.Location
	if location == "" {
		location = "india"
	}
	datePosted := q.DatePosted
	if datePosted == "" {
		datePosted = "month"
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	numPages := q.NumPages
	if numPages < 1 {
		numPages = 1
	}

	searchQuery := fmt.Sprintf("%s jobs in %s", q.Query, location)
	if q.RemoteOnly {
		searchQuery += " remote"
	}
	params := url.Values{}
	params.Set("query", searchQuery)
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", strconv.Itoa(numPages))
	params.Set("date_posted", datePosted)
	params.Set("country", "in")
	params.Set("language", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listings provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Data []Listing `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding listings response: %w", err)
	}

	return ScoreListings(payload.Data), nil
}

// ScoreListings annotates each listing with its women-friendliness score
// and returns the slice sorted by score, highest first. Ties keep their
// original order.
func ScoreListings(jobs []Listing) []Listing {
	maxPossible := 0.0
	for _, d := range scoringDimensions {
		maxPossible += d.weight
	}

	scored := make([]Listing, len(jobs))
	for i, job := range jobs {
		text := strings.ToLower(job.Title + " " + job.Description + " " + job.Employer)

		total := 0.0
		var aspects []string
		analysis := make(map[string]DimensionAnalysis)

		for _, dim := range scoringDimensions {
			score := 0.0
			var matches []string
			for j, p := range dim.patterns {
				if p.MatchString(text) {
					score += dim.weight
					matches = append(matches, dim.keywords[j])
				}
			}
			if score > 0 {
				// Multiple keyword hits cannot push a dimension past its weight.
				normalized := math.Min(score, dim.weight)
				total += normalized
				aspects = append(aspects, dim.description)
				analysis[dim.name] = DimensionAnalysis{
					Score:           normalized,
					MaxScore:        dim.weight,
					MatchedKeywords: matches,
				}
			}
		}

		job.WomenFriendlyScore = math.Round(total/maxPossible*10*10) / 10
		job.WomenFriendlyAspects = aspects
		job.Analysis = analysis
		scored[i] = job
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].WomenFriendlyScore > scored[j].WomenFriendlyScore
	})
	return scored
}

// FormatListings renders listings for display, up to maxResults entries.
func FormatListings(jobs []Listing, maxResults int) string {
	if len(jobs) == 0 {
		return "No job listings found matching your criteria."
	}
	if maxResults < 1 {
		maxResults = 5
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d job listings:\n\n", len(jobs))

	for _, job := range jobs[:min(maxResults, len(jobs))] {
		fmt.Fprintf(&sb, "Title: %s\n", orNA(job.Title))
		fmt.Fprintf(&sb, "Company: %s\n", orNA(job.Employer))
		fmt.Fprintf(&sb, "Location: %s\n", orNA(job.Country))
		fmt.Fprintf(&sb, "Women-Friendly Score: %.1f\n", job.WomenFriendlyScore)

		if len(job.WomenFriendlyAspects) > 0 {
			sb.WriteString("\nWomen-Friendly Aspects:\n")
			for _, aspect := range job.WomenFriendlyAspects {
				fmt.Fprintf(&sb, "- ✅ %s\n", aspect)
			}
		}
		if job.ApplyLink != "" {
			fmt.Fprintf(&sb, "\n🔗 [Apply for this position](%s)\n", job.ApplyLink)
		}
		if job.Description != "" {
			desc := job.Description
			if r := []rune(desc); len(r) > 300 {
				desc = string(r[:300]) + "..."
			}
			fmt.Fprintf(&sb, "\nJob Description Preview\n%s\n", desc)
		}
		sb.WriteString("\n---\n\n")
	}
	return sb.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
