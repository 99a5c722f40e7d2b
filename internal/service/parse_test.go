package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdduha/skillscribe/internal/models"
)

const validReply = `{
  "explanation": "SUM adds every number in a range.",
  "solution": {"language": "excel_formula", "code": "=SUM(A:A)"},
  "microLesson": [
    {"step": 1, "title": "Ranges", "content": "A:A is the whole column."},
    {"step": 2, "title": "SUM", "content": "SUM ignores text."},
    {"step": 3, "title": "Practice", "content": "Try SUM(B:B)."}
  ]
}`

func TestParseSolution(t *testing.T) {
	got, err := parseSolution("\n  " + validReply + "  \n")
	require.NoError(t, err)

	want := &models.Solution{
		Explanation: "SUM adds every number in a range.",
		Solution:    models.CodeSolution{Language: "excel_formula", Code: "=SUM(A:A)"},
		MicroLesson: []models.MicroLessonStep{
			{Step: 1, Title: "Ranges", Content: "A:A is the whole column."},
			{Step: 2, Title: "SUM", Content: "SUM ignores text."},
			{Step: 3, Title: "Practice", Content: "Try SUM(B:B)."},
		},
	}
	assert.Equal(t, want, got)
}

func TestParseSolutionMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{
			name:  "no explanation",
			reply: `{"solution":{"language":"sql","code":"SELECT 1"},"microLesson":[]}`,
			want:  "missing explanation",
		},
		{
			name:  "empty explanation",
			reply: `{"explanation":"","solution":{"language":"sql","code":"SELECT 1"},"microLesson":[]}`,
			want:  "missing explanation",
		},
		{
			name:  "no solution",
			reply: `{"explanation":"e","microLesson":[]}`,
			want:  "missing solution",
		},
		{
			name:  "null lesson",
			reply: `{"explanation":"e","solution":{"language":"sql","code":"SELECT 1"},"microLesson":null}`,
			want:  "missing microLesson",
		},
		{
			name:  "upper-case keys",
			reply: `{"EXPLANATION":"e","SOLUTION":{"LANGUAGE":"py","CODE":"x"},"MICROLESSON":[]}`,
			want:  "missing explanation, solution, microLesson",
		},
		{
			name:  "mixed-case lesson key",
			reply: `{"explanation":"e","solution":{"language":"sql","code":"SELECT 1"},"MicroLesson":[]}`,
			want:  "missing microLesson",
		},
		{
			name:  "null document",
			reply: `null`,
			want:  "missing explanation, solution, microLesson",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSolution(tt.reply)
			assert.Nil(t, got)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errInvalidStructure))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseSolutionMalformedJSON(t *testing.T) {
	for _, reply := range []string{"", "```json\n{}\n```", `{"explanation": "cut`} {
		got, err := parseSolution(reply)
		assert.Nil(t, got)
		assert.ErrorContains(t, err, "failed to parse model reply")
	}
}
