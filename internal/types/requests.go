package types

// AnalyzeTextRequest is the JSON body for analyzing pasted resume and job description text
type AnalyzeTextRequest struct {
	ResumeText         string `json:"resume_text" validate:"required"`
	JobDescriptionText string `json:"job_description_text" validate:"required,max=100000"`
	Filename           string `json:"filename,omitempty" validate:"omitempty,max=255"`
}

// MatchRequest is the JSON body for a direct semantic match between two term lists
type MatchRequest struct {
	Requirements []string `json:"requirements" validate:"required,min=1,dive,required"`
	Candidates   []string `json:"candidates" validate:"dive,required"`
	Threshold    float64  `json:"threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// NormalizeRequest is the JSON body for normalizing skill terms
type NormalizeRequest struct {
	Skills []string `json:"skills" validate:"required,min=1"`
}

// NormalizedSkill pairs a raw term with its canonical form and taxonomy category
type NormalizedSkill struct {
	Raw       string `json:"raw"`
	Canonical string `json:"canonical"`
	Category  string `json:"category,omitempty"`
}

// ClassifyRequest is the JSON body for domain classification
type ClassifyRequest struct {
	Text string `json:"text" validate:"required,max=100000"`
}

// ClassifyResponse reports the detected domain of a text
type ClassifyResponse struct {
	Domain       JobType         `json:"domain"`
	Rejected     bool            `json:"rejected"`
	Scores       map[JobType]int `json:"scores"`
	HasITMarkers bool            `json:"has_it_markers"`
}
