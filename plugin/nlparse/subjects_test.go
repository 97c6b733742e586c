package nlparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSubjectLoads(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []SubjectLoad
	}{
		{
			name: "weight loads",
			text: "수학 40 영어 30 국어 30",
			want: []SubjectLoad{
				{Name: "수학", Amount: 40, Unit: UnitWeight},
				{Name: "영어", Amount: 30, Unit: UnitWeight},
				{Name: "국어", Amount: 30, Unit: UnitWeight},
			},
		},
		{
			name: "hour loads",
			text: "수학 20시간, 영어 15시간",
			want: []SubjectLoad{
				{Name: "수학", Amount: 20, Unit: UnitHours},
				{Name: "영어", Amount: 15, Unit: UnitHours},
			},
		},
		{
			name: "repeated subject sums",
			text: "수학 20 수학 30",
			want: []SubjectLoad{
				{Name: "수학", Amount: 50, Unit: UnitWeight},
			},
		},
		{
			name: "unit conflict falls back to weight",
			text: "수학 20시간 수학 10",
			want: []SubjectLoad{
				{Name: "수학", Amount: 30, Unit: UnitWeight},
			},
		},
		{
			name: "marker words are not subjects",
			text: "9월 10일 시험 수학 40",
			want: []SubjectLoad{
				{Name: "수학", Amount: 40, Unit: UnitWeight},
			},
		},
		{
			name: "fractional amounts",
			text: "영어 1.5시간",
			want: []SubjectLoad{
				{Name: "영어", Amount: 1.5, Unit: UnitHours},
			},
		},
		{
			name: "nothing parsable",
			text: "오늘 날씨 좋다",
			want: []SubjectLoad{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseSubjectLoads(tt.text))
		})
	}
}

func TestInferBareSubjects(t *testing.T) {
	require.Equal(t, []string{"수학", "영어", "국어"}, InferBareSubjects("과목 수학 영어 국어"))
	require.Equal(t, []string{"수학", "영어"}, InferBareSubjects("과목 수학, 영어"))
	require.Nil(t, InferBareSubjects("수학 영어 국어"))

	many := "과목 " + strings.Join([]string{"가", "나", "다", "라", "마", "바", "사", "아", "자", "차"}, " ")
	require.Len(t, InferBareSubjects(many), maxBareSubjects)
}

func TestParseDailyHours(t *testing.T) {
	hours, ok := ParseDailyHours("하루 3시간")
	require.True(t, ok)
	require.Equal(t, 3.0, hours)

	hours, ok = ParseDailyHours("2.5시간 공부")
	require.True(t, ok)
	require.Equal(t, 2.5, hours)

	_, ok = ParseDailyHours("하루 0시간")
	require.False(t, ok)

	_, ok = ParseDailyHours("시간 없음")
	require.False(t, ok)
}

func TestParsePerDayHours(t *testing.T) {
	hours, ok := ParsePerDayHours("하루 4시간 배분")
	require.True(t, ok)
	require.Equal(t, 4.0, hours)

	// Zero is reported; the caller decides how to floor it.
	hours, ok = ParsePerDayHours("하루 0시간")
	require.True(t, ok)
	require.Zero(t, hours)

	_, ok = ParsePerDayHours("3시간")
	require.False(t, ok)
}

func TestParseStudyDays(t *testing.T) {
	days, ok := ParseStudyDays("10일 동안")
	require.True(t, ok)
	require.Equal(t, 10, days)

	days, ok = ParseStudyDays("120일 계획")
	require.True(t, ok)
	require.Equal(t, 120, days)

	_, ok = ParseStudyDays("기간 없음")
	require.False(t, ok)
}

func TestExtractStudyGoal(t *testing.T) {
	require.Equal(t, "토익", ExtractStudyGoal("토익 공부 10일"))
	require.Equal(t, DefaultStudyGoal, ExtractStudyGoal("공부"))
	require.Equal(t, DefaultStudyGoal, ExtractStudyGoal("일정 추가"))
}
