package knowledge

// Resource is one entry in a category list: a learning resource, success
// story, or piece of career advice.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Trend is the single trend object held per industry category. The zero
// value marshals to {} and means "no trend recorded yet".
type Trend struct {
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Source      string `json:"source,omitempty"`
}

// IsZero reports whether no trend has been recorded for a category.
func (t Trend) IsZero() bool { return t.Title == "" }

// CareerResources mirrors career_resources.json.
type CareerResources struct {
	LearningResources map[string][]Resource `json:"learning_resources"`
	CareerPaths       map[string][]Resource `json:"career_paths"`
	LastUpdated       string                `json:"last_updated"`
	Source            string                `json:"source"`
}

// MarketTrends mirrors market_trends.json. JobMarketInsights is an open
// dictionary; its skeleton keys are advisory only.
type MarketTrends struct {
	IndustryTrends    map[string]Trend `json:"industry_trends"`
	JobMarketInsights map[string]any   `json:"job_market_insights"`
	LastUpdated       string           `json:"last_updated"`
	Source            string           `json:"source"`
}

// CareerInsights mirrors career_insights.json.
type CareerInsights struct {
	SuccessStories    map[string][]Resource `json:"success_stories"`
	CareerAdvice      map[string][]Resource `json:"career_advice"`
	InterviewInsights map[string][]Resource `json:"interview_insights"`
	SkillDevelopment  map[string][]Resource `json:"skill_development"`
	LastUpdated       string                `json:"last_updated"`
	Source            string                `json:"source"`
}

// Fixed category keys. Refreshes may only append to or overwrite leaves
// under these keys; the skeleton itself never changes shape.
var (
	learningCategories = []string{
		"python_development", "web_development", "data_science",
		"machine_learning", "cloud_computing",
	}
	careerPathCategories = []string{
		"software_development", "data_engineering", "devops",
		"ai_ml", "cloud_architecture",
	}
	trendCategories = []string{
		"software_development", "data_science", "ai_ml",
		"cloud_computing", "cybersecurity",
	}
	storyCategories = []string{
		"software_development", "data_science", "ai_ml",
		"cloud_computing", "cybersecurity",
	}
	adviceCategories = []string{
		"entry_level", "mid_level", "senior_level",
	}
	interviewCategories = []string{
		"technical_interviews", "behavioral_interviews", "system_design",
	}
	skillCategories = []string{
		"technical_skills", "soft_skills", "leadership_skills",
	}
)

func emptyCareerResources() CareerResources {
	return CareerResources{
		LearningResources: emptyLists(learningCategories),
		CareerPaths:       emptyLists(careerPathCategories),
		Source:            "serp_api",
	}
}

func emptyMarketTrends() MarketTrends {
	trends := make(map[string]Trend, len(trendCategories))
	for _, c := range trendCategories {
		trends[c] = Trend{}
	}
	return MarketTrends{
		IndustryTrends: trends,
		JobMarketInsights: map[string]any{
			"demand_level":         "",
			"growth_rate":          "",
			"top_companies":        []any{},
			"required_skills":      []any{},
			"salary_ranges":        map[string]any{},
			"remote_opportunities": map[string]any{},
		},
		Source: "news_api",
	}
}

func emptyCareerInsights() CareerInsights {
	return CareerInsights{
		SuccessStories:    emptyLists(storyCategories),
		CareerAdvice:      emptyLists(adviceCategories),
		InterviewInsights: emptyLists(interviewCategories),
		SkillDevelopment:  emptyLists(skillCategories),
		Source:            "serp_api",
	}
}

func emptyLists(categories []string) map[string][]Resource {
	m := make(map[string][]Resource, len(categories))
	for _, c := range categories {
		m[c] = []Resource{}
	}
	return m
}

// normalize restores skeleton keys that a hand-edited or truncated document
// may be missing. Unknown keys are already dropped by unmarshalling into the
// fixed struct; missing categories come back as empty leaves.
func (d *CareerResources) normalize() {
	d.LearningResources = withCategories(d.LearningResources, learningCategories)
	d.CareerPaths = withCategories(d.CareerPaths, careerPathCategories)
	if d.Source == "" {
		d.Source = "serp_api"
	}
}

func (d *MarketTrends) normalize() {
	if d.IndustryTrends == nil {
		d.IndustryTrends = make(map[string]Trend, len(trendCategories))
	}
	for _, c := range trendCategories {
		if _, ok := d.IndustryTrends[c]; !ok {
			d.IndustryTrends[c] = Trend{}
		}
	}
	if d.JobMarketInsights == nil {
		d.JobMarketInsights = map[string]any{}
	}
	if d.Source == "" {
		d.Source = "news_api"
	}
}

func (d *CareerInsights) normalize() {
	d.SuccessStories = withCategories(d.SuccessStories, storyCategories)
	d.CareerAdvice = withCategories(d.CareerAdvice, adviceCategories)
	d.InterviewInsights = withCategories(d.InterviewInsights, interviewCategories)
	d.SkillDevelopment = withCategories(d.SkillDevelopment, skillCategories)
	if d.Source == "" {
		d.Source = "serp_api"
	}
}

func withCategories(m map[string][]Resource, categories []string) map[string][]Resource {
	if m == nil {
		m = make(map[string][]Resource, len(categories))
	}
	for _, c := range categories {
		if _, ok := m[c]; !ok {
			m[c] = []Resource{}
		}
	}
	return m
}
