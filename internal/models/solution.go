package models

import (
	"strings"

	"github.com/kdduha/skillscribe/internal/errs"
)

// Solution is the structured answer returned for one request.
type Solution struct {
	Explanation string            `json:"explanation" example:"SUM ignores text cells, so the column has to be filtered first."`
	Solution    CodeSolution      `json:"solution"`
	MicroLesson []MicroLessonStep `json:"microLesson"`
}

type CodeSolution struct {
	Language string `json:"language" example:"excel_formula"`
	Code     string `json:"code" example:"=SUM(A:A)"`
}

type MicroLessonStep struct {
	Step    int    `json:"step" example:"1"`
	Title   string `json:"title" example:"Ranges"`
	Content string `json:"content" example:"A:A selects the whole column."`
}

// LessonSteps is the number of micro-lesson steps the model is asked for.
const LessonSteps = 3

// SolveRequest represents request for the solve endpoint
type SolveRequest struct {
	Prompt      string `json:"prompt" example:"sum column A"`
	ImageBase64 string `json:"image_base64" validate:"required" example:"iVBORw0KGgoAAAANSUhEUgAA..."`
	MimeType    string `json:"mime_type" validate:"required" example:"image/png"`
}

func (r SolveRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return errs.NewValidationError("prompt is empty")
	}
	if r.ImageBase64 == "" {
		return errs.NewValidationError("image_base64 is empty")
	}
	if r.MimeType == "" {
		return errs.NewValidationError("mime_type is empty")
	}
	return nil
}
