package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDaysLeftReply(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "future date",
			text: "3월 15일까지 며칠 남았어?",
			want: "2026-03-15까지 5일 남았어요. (D-5)",
			ok:   true,
		},
		{
			name: "today",
			text: "2026-03-10 D-Day 알려줘",
			want: "2026-03-10 오늘입니다. (D-Day)",
			ok:   true,
		},
		{
			name: "past iso date",
			text: "2026-03-07까지 며칠?",
			want: "2026-03-07 기준 3일 지났어요. (D+3)",
			ok:   true,
		},
		{
			name: "question without date",
			text: "며칠 남았어?",
			ok:   false,
		},
		{
			name: "date without question",
			text: "3월 15일 발표",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DaysLeftReply(tt.text, now)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
