package nlparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

func TestResolveDay(t *testing.T) {
	tests := []struct {
		name string
		base time.Time
		day  int
		want time.Time
	}{
		{
			name: "later this month",
			base: base,
			day:  20,
			want: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "same day does not roll",
			base: base,
			day:  10,
			want: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "passed day rolls to next month",
			base: base,
			day:  5,
			want: time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls to january",
			base: time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
			day:  5,
			want: time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveDay(tt.base, tt.day))
		})
	}
}

func TestResolveMonthDay(t *testing.T) {
	tests := []struct {
		name       string
		month, day int
		want       time.Time
	}{
		{"later this year", 9, 10, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)},
		{"same day does not roll", 3, 10, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"passed date rolls to next year", 1, 5, time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveMonthDay(base, tt.month, tt.day))
		})
	}
}

func TestResolveGenericDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{
			name: "iso date",
			text: "2026-09-10 발표",
			want: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "iso with dots",
			text: "2026.9.1 개강",
			want: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "iso wins over bare day",
			text: "2026-09-10 그리고 20일",
			want: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "month day",
			text: "9월 10일 발표",
			want: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "bare day",
			text: "20일 회의",
			want: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "no date",
			text: "내용 없는 문장",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveGenericDate(tt.text, base)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveExamDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{
			name: "bare day with exam marker",
			text: "20일 시험이야",
			want: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "bare day without exam marker rejected",
			text: "20일 모임",
			ok:   false,
		},
		{
			name: "full date needs no exam marker",
			text: "9월 10일 발표",
			want: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveExamDate(tt.text, base)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}
