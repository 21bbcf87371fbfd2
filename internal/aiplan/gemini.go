// internal/aiplan/gemini.go
package aiplan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"fitpulse/fitness-tracker/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"

	generationTemperature = 0.7
	generationTopK        = 40
	generationTopP        = 0.95
	generationMaxTokens   = 16000
)

// ErrMissingAPIKey is returned by NewGeminiSource when no key is configured.
var ErrMissingAPIKey = errors.New("gemini api key is required")

// GeminiSource calls the Gemini REST API and parses the reply into a
// GeneratedPlan. It implements ExternalPlanSource.
type GeminiSource struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewGeminiSource creates a Gemini-backed plan source. Model and baseURL fall
// back to defaults when empty.
func NewGeminiSource(apiKey, model, baseURL string, logger *zap.Logger) (*GeminiSource, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiSource{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
		logger:  logger,
	}, nil
}

// GeneratePlan builds the prompt, calls the model, and parses the response.
// An empty weekly schedule is an error, never a silent success.
func (g *GeminiSource) GeneratePlan(ctx context.Context, req Request) (*GeneratedPlan, error) {
	prompt := buildPrompt(req)

	text, err := g.generateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}

	plan, err := ParseGeneratedPlan(text)
	if err != nil {
		g.logger.Warn("failed to parse model output",
			zap.Error(err),
			zap.String("head", truncate(text, 500)))
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return plan, nil
}

// Request/response shapes for the generateContent endpoint.
type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiSource) generateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     generationTemperature,
			TopK:            generationTopK,
			TopP:            generationTopP,
			MaxOutputTokens: generationMaxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// buildPrompt assembles the coaching prompt from the request context.
// Optional sections are omitted entirely when their data is absent.
func buildPrompt(req Request) string {
	goal := req.Goal
	cfg := req.Config

	var sb strings.Builder
	sb.WriteString("You are an expert fitness coach and workout planner. Generate a personalized workout plan based on the following information.\n\n")

	sb.WriteString("## User Goal\n")
	fmt.Fprintf(&sb, "- **Title**: %s\n", goal.Title)
	fmt.Fprintf(&sb, "- **Description**: %s\n", orDefault(goal.Description, "Not specified"))
	fmt.Fprintf(&sb, "- **Target**: %g %s\n", goal.TargetValue, goal.Unit)
	fmt.Fprintf(&sb, "- **Current**: %g %s\n", goal.CurrentValue, goal.Unit)
	if goal.TargetDate != nil {
		fmt.Fprintf(&sb, "- **Target Date**: %s\n", goal.TargetDate.Format("2006-01-02"))
	} else {
		sb.WriteString("- **Target Date**: Not specified\n")
	}

	sb.WriteString("\n## Plan Requirements\n")
	fmt.Fprintf(&sb, "- **Duration**: %d weeks\n", cfg.WeeksDuration)
	fmt.Fprintf(&sb, "- **Workouts per Week**: %d\n", cfg.WorkoutsPerWeek)
	fmt.Fprintf(&sb, "- **Average Session Duration**: %d minutes\n", cfg.AvgDuration)

	if p := req.Profile; p != nil {
		sb.WriteString("\n## User Profile\n")
		if p.DateOfBirth != nil {
			fmt.Fprintf(&sb, "- **Age**: %d years\n", p.Age(time.Now()))
		}
		if p.Gender != "" {
			fmt.Fprintf(&sb, "- **Gender**: %s\n", p.Gender)
		}
		if p.HeightCm > 0 {
			fmt.Fprintf(&sb, "- **Height**: %g cm\n", p.HeightCm)
		}
		if p.FitnessLevel != "" {
			fmt.Fprintf(&sb, "- **Fitness Level**: %s\n", p.FitnessLevel)
		}
		if p.MedicalConditions != "" {
			fmt.Fprintf(&sb, "- **Medical Conditions**: %s\n", p.MedicalConditions)
		}
		if p.Injuries != "" {
			fmt.Fprintf(&sb, "- **Injuries/Limitations**: %s\n", p.Injuries)
		}
	}

	if m := req.LatestMeasurement; m != nil && m.Weight > 0 {
		sb.WriteString("\n## Current Body Metrics\n")
		fmt.Fprintf(&sb, "- **Weight**: %g kg\n", m.Weight)
		if m.BodyFatPercentage != nil {
			fmt.Fprintf(&sb, "- **Body Fat**: %g%%\n", *m.BodyFatPercentage)
		}
		if m.MuscleMass != nil {
			fmt.Fprintf(&sb, "- **Muscle Mass**: %g kg\n", *m.MuscleMass)
		}
	}

	if stats := summarizeExerciseHistory(req.WorkoutHistory); len(stats) > 0 {
		sb.WriteString("\n## Recent Workout History\n")
		fmt.Fprintf(&sb, "User has completed %d workout(s) recently.\n", len(req.WorkoutHistory))
		sb.WriteString("\n### Exercise Performance Data:\n")
		for _, s := range stats {
			fmt.Fprintf(&sb, "- **%s**: Max %g %s, Avg %.1f %s\n", s.Name, s.MaxWeight, s.Unit, s.AvgWeight, s.Unit)
		}
	}

	sb.WriteString(`
## Instructions
Create a detailed workout plan with the specified duration and frequency.

**Important Requirements:**
1. Respect all constraints and injuries mentioned
2. Match the user's fitness level
3. Focus on the user's goal
4. Include progressive overload across weeks
5. Each workout should have 4-6 exercises maximum
6. Provide specific exercises with sets, reps, and weights
7. Schedule workouts with rest days between intense sessions
8. Day field represents day of week: 0=Sunday, 1=Monday, ..., 6=Saturday

**Output Format (STRICT JSON):**

` + "```json" + `
{
  "weeklySchedule": [
    {
      "week": 1,
      "day": 1,
      "dayName": "Monday",
      "workoutType": "Upper Body Strength",
      "exercises": [
        {"name": "Bench Press", "sets": 3, "reps": 10, "weight": 60, "weightUnit": "kg", "restSeconds": 90},
        {"name": "Rows", "sets": 3, "reps": 10, "weight": 50, "weightUnit": "kg", "restSeconds": 90}
      ],
      "duration": 60,
      "intensity": "medium",
      "notes": "Focus on form this week"
    }
  ],
  "rationale": "Explanation of why this plan suits the user...",
  "progressionStrategy": "How the plan progresses week by week...",
  "keyConsiderations": ["Point 1", "Point 2", "Point 3"]
}
` + "```" + `

Generate a safe and effective workout plan. Return ONLY the JSON object.`)

	return sb.String()
}

// exerciseStats is the per-exercise performance summary fed into the prompt.
type exerciseStats struct {
	Name      string
	MaxWeight float64
	AvgWeight float64
	Unit      string
}

// summarizeExerciseHistory aggregates max/avg working weight per exercise
// name. Exercises without a positive weight are skipped. Output is sorted by
// name so the prompt is stable for identical history.
func summarizeExerciseHistory(workouts []domain.Workout) []exerciseStats {
	type acc struct {
		sum, max float64
		count    int
		unit     string
	}
	byName := make(map[string]*acc)

	for _, w := range workouts {
		for _, ex := range w.Exercises {
			name := strings.ToLower(strings.TrimSpace(ex.Name))
			if name == "" || ex.Weight <= 0 {
				continue
			}
			a := byName[name]
			if a == nil {
				unit := ex.WeightUnit
				if unit == "" {
					unit = "kg"
				}
				a = &acc{unit: unit}
				byName[name] = a
			}
			a.sum += ex.Weight
			a.count++
			if ex.Weight > a.max {
				a.max = ex.Weight
			}
		}
	}

	stats := make([]exerciseStats, 0, len(byName))
	for name, a := range byName {
		stats = append(stats, exerciseStats{
			Name:      name,
			MaxWeight: a.max,
			AvgWeight: a.sum / float64(a.count),
			Unit:      a.unit,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
