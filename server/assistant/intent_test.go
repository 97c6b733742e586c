package assistant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"exam distribution", "9월 10일 시험까지 배분해줘", IntentExamPlan},
		{"exam with subject marker", "시험 과목 수학 영어", IntentExamPlan},
		{"exam marker outranks study marker", "시험까지 공부 배분", IntentExamPlan},
		{"study plan", "토익 공부 10일", IntentStudyPlan},
		{"plan marker alone", "계획 세워줘", IntentStudyPlan},
		{"explicit date schedule", "2026-09-10 발표", IntentSchedule},
		{"day and hour schedule", "20일 9시 면접", IntentSchedule},
		{"day only schedule", "15일 출장", IntentSchedule},
		{"bare exam marker is not a plan", "시험 준비", IntentUnknown},
		{"unknown", "안녕하세요", IntentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestIntentString(t *testing.T) {
	require.Equal(t, "exam_plan", IntentExamPlan.String())
	require.Equal(t, "study_plan", IntentStudyPlan.String())
	require.Equal(t, "schedule", IntentSchedule.String())
	require.Equal(t, "days_left", IntentDaysLeft.String())
	require.Equal(t, "unknown", IntentUnknown.String())
}
