package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asha-ai/asha/internal/cache"
	"github.com/asha-ai/asha/internal/intent"
	"github.com/asha-ai/asha/internal/tool"
)

const interviewTTL = 24 * time.Hour

// InterviewPrep assembles an interview preparation guide for a role.
type InterviewPrep struct {
	search Searcher
	cache  *cache.Store
}

func NewInterviewPrep(s Searcher, store *cache.Store) *InterviewPrep {
	return &InterviewPrep{search: s, cache: store}
}

func (t *InterviewPrep) Name() string { return "interview_prep" }

func (t *InterviewPrep) Description() string {
	return "Provides personalized interview preparation with real-time data"
}

func (t *InterviewPrep) Execute(ctx context.Context, query string) (tool.Result, error) {
	role := intent.Role(query)
	level := intent.Level(query)

	queries := map[string]string{
		"common_questions":     fmt.Sprintf("most common %s interview questions 2025", role),
		"technical_questions":  fmt.Sprintf("%s technical interview questions coding problems", role),
		"behavioral_questions": fmt.Sprintf("%s behavioral interview questions STAR method", role),
		"company_insights":     fmt.Sprintf("top companies hiring %s interview process", role),
		"interview_tips":       fmt.Sprintf("%s interview tips best practices dos and donts", role),
		"salary_negotiation":   fmt.Sprintf("%s salary negotiation tips market range", role),
	}
	data := loadOrFetch(ctx, t.search, t.cache, cache.Key(role), interviewTTL, queries)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎯 Interview Preparation Guide for %s (%s level):\n\n", role, level)
	writeSections(&sb, data, []section{
		{"📝 Common Interview Questions:", "common_questions", 3},
		{"💻 Technical Questions & Challenges:", "technical_questions", 3},
		{"🤝 Behavioral Questions (Use STAR Method):", "behavioral_questions", 3},
		{"🏢 Company & Process Insights:", "company_insights", 2},
		{"💡 Key Interview Tips:", "interview_tips", 3},
		{"💰 Salary Negotiation Tips:", "salary_negotiation", 2},
	})
	writeTips(&sb, "✅ Pre-Interview Checklist:", []string{
		"Research the company thoroughly",
		"Review your projects and prepare STAR examples",
		"Practice coding problems on platforms like LeetCode",
		"Prepare questions to ask the interviewer",
		"Test your technical setup for virtual interviews",
		"Review the job description and match your experiences",
	})

	return wrap(tool.ResponseTitle(query), data, sb.String()), nil
}
