package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-engine/internal/prompts"
)

// ExtractionSchema describes the JSON object the oracle must return
type ExtractionSchema struct {
	Name        string        // Schema name, used in logs
	Description string        // System prompt preamble describing the extraction task
	Rules       string        // Extra instructions appended after the field list
	InputLabel  string        // Heading placed above the input text
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string // Description for the model
}

// BuildExtractionPrompt constructs the oracle prompt from schema and input text
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) (string, error) {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		fmt.Fprintf(&sb, "  %q: %s", field.Name, typeHint)
		if field.Description != "" {
			fmt.Fprintf(&sb, " // %s", field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	if schema.Rules != "" {
		sb.WriteString(schema.Rules)
		sb.WriteString("\n")
	}
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	label := schema.InputLabel
	if label == "" {
		label = "Input text"
	}
	input, err := prompts.Render("input_block", map[string]string{
		"Label": label,
		"Text":  inputText,
	})
	if err != nil {
		return "", err
	}
	sb.WriteString(input)

	return sb.String(), nil
}

// ResumeSchema returns the extraction schema for resumes
func ResumeSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "Resume",
		Description: prompts.MustText("resume_system"),
		Rules:       prompts.MustText("resume_rules"),
		InputLabel:  "Resume text",
		Fields: []SchemaField{
			{Name: "personal_info", Type: `{"name": string, "email": string, "phone": string, "location": string, "linkedin": string, "github": string, "website": string}`},
			{Name: "summary", Type: "string", Description: "Professional summary or objective"},
			{Name: "skills", Type: `{"technical": [string], "frameworks": [string], "languages": [string], "tools": [string], "databases": [string], "cloud": [string]}`},
			{Name: "experience", Type: `[{"company": string, "position": string, "location": string, "start_date": string, "end_date": string, "current": boolean, "description": [string], "technologies": [string]}]`},
			{Name: "education", Type: `[{"institution": string, "degree": string, "field": string, "start_date": string, "end_date": string, "gpa": string}]`},
			{Name: "projects", Type: `[{"name": string, "description": string, "technologies": [string], "url": string}]`},
			{Name: "certifications", Type: `[{"name": string, "issuer": string, "date": string}]`},
		},
	}
}

// SearchIntentSchema returns the extraction schema for recruiter search queries
func SearchIntentSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "SearchIntent",
		Description: prompts.MustText("search_system"),
		Rules:       prompts.MustText("search_rules"),
		InputLabel:  "Search query",
		Fields: []SchemaField{
			{Name: "skills", Type: "[string]", Description: "Technologies the candidate must know"},
			{Name: "requirements", Type: "[string]", Description: "Other requirements such as domains or responsibilities"},
			{Name: "filters", Type: `{"experience": number | null, "location": string}`},
		},
	}
}
