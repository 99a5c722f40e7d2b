package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/kdduha/skillscribe/internal/models"
)

var errInvalidStructure = errors.New("invalid response structure from AI")

// replyAPI matches object keys exactly; the default config folds case.
var replyAPI = sonic.Config{CaseSensitive: true}.Froze()

// rawSolution distinguishes absent fields from zero values.
type rawSolution struct {
	Explanation string                   `json:"explanation"`
	Solution    *models.CodeSolution     `json:"solution"`
	MicroLesson []models.MicroLessonStep `json:"microLesson"`
}

// parseSolution decodes the model's text reply. All three top-level fields
// must be present and the explanation non-empty; an empty lesson array is
// accepted.
func parseSolution(text string) (*models.Solution, error) {
	var raw rawSolution
	if err := replyAPI.UnmarshalFromString(strings.TrimSpace(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model reply: %w", err)
	}

	var missing []string
	if raw.Explanation == "" {
		missing = append(missing, "explanation")
	}
	if raw.Solution == nil {
		missing = append(missing, "solution")
	}
	if raw.MicroLesson == nil {
		missing = append(missing, "microLesson")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", errInvalidStructure, strings.Join(missing, ", "))
	}

	return &models.Solution{
		Explanation: raw.Explanation,
		Solution:    *raw.Solution,
		MicroLesson: raw.MicroLesson,
	}, nil
}
