package intent

import (
	"reflect"
	"testing"
)

func TestRole(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"I want to become a data scientist with python", "Data Scientist"},
		{"careers in data science", "Data Scientist"},
		{"software developer jobs", "Software Engineer"},
		{"ml engineer interview", "Machine Learning Engineer"},
		{"machine learning roles", "Machine Learning Engineer"},
		{"data analyst salary", "Data Analyst"},
		{"product manager path", "Product Manager"},
		{"senior devops jobs in uk", "DevOps Engineer"},
		{"hello there", DefaultRole},
		{"", DefaultRole},
	}
	for _, tt := range tests {
		if got := Role(tt.query); got != tt.want {
			t.Errorf("Role(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestSkills(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"I want to become a data scientist with python", []string{"python"}},
		{"learn docker and kubernetes on aws", []string{"aws", "docker", "kubernetes"}},
		{"no skills mentioned", []string{"python"}},
	}
	for _, tt := range tests {
		if got := Skills(tt.query); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Skills(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"senior devops jobs in uk", "senior"},
		{"experienced engineer roles", "senior"},
		{"mid level positions", "mid"},
		{"intermediate python", "mid"},
		{"first job advice", "entry"},
	}
	for _, tt := range tests {
		if got := Level(tt.query); got != tt.want {
			t.Errorf("Level(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		query      string
		candidates []string
		want       string
	}{
		{"senior devops jobs in uk", JobLocations, "Uk"},
		{"remote python roles", JobLocations, "Remote"},
		{"events in europe", EventLocations, "Europe"},
		{"anything at all", JobLocations, "global"},
	}
	for _, tt := range tests {
		if got := Location(tt.query, tt.candidates); got != tt.want {
			t.Errorf("Location(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestBackground(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"I come from a non-tech background", "non-tech"},
		{"recent university graduate", "student"},
		{"self-taught through a bootcamp", "self-taught"},
		{"want to switch into data science", "career-switch"},
		{"plain question", ""},
	}
	for _, tt := range tests {
		if got := Background(tt.query); got != tt.want {
			t.Errorf("Background(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestExtractDefaults(t *testing.T) {
	got := Extract("hello there")
	want := Intent{
		Role:            DefaultRole,
		Skills:          []string{"python"},
		ExperienceLevel: "entry",
		Location:        "global",
		Background:      "",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract defaults = %+v, want %+v", got, want)
	}
}
