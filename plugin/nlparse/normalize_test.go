package nlparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "면접", "면접"},
		{"surrounding punctuation", " 면접, ", "면접"},
		{"leading particle", "은 회의", "회의"},
		{"trailing particle", "회의가", "회의"},
		{"leading and trailing particle", "는 면접을", "면접"},
		{"trailing ending", "출장 있어", "출장"},
		{"trailing ending then particle", "발표 예정", "발표"},
		{"whitespace collapsed", "팀   미팅", "팀 미팅"},
		{"empty falls back", "", DefaultTitle},
		{"punctuation only falls back", " ,. ", DefaultTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeTitle(tt.raw))
		})
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	inputs := []string{" 면접, ", "은 회의가", "출장 있어", "팀  미팅", ""}
	for _, raw := range inputs {
		once := NormalizeTitle(raw)
		require.Equal(t, once, NormalizeTitle(once), "input %q", raw)
	}
}
