package memory

import (
	"testing"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func stubSetLimit(t *testing.T, current int64) *[]int64 {
	t.Helper()
	var calls []int64
	orig := setLimit
	setLimit = func(limit int64) int64 {
		calls = append(calls, limit)
		return current
	}
	t.Cleanup(func() { setLimit = orig })
	return &calls
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		want      Limit
		wantCalls []int64
	}{
		{
			name: "nothing set",
			env:  nil,
			want: Limit{Source: SourceNone},
		},
		{
			name:      "container limit with default ratio",
			env:       map[string]string{"MEMORY_LIMIT": "1000"},
			want:      Limit{Source: SourceContainer, ContainerLimit: 1000, GoMemLimit: 900, Ratio: DefaultRatio},
			wantCalls: []int64{900},
		},
		{
			name:      "custom ratio",
			env:       map[string]string{"MEMORY_LIMIT": "1000", "MEMORY_RATIO": "0.5"},
			want:      Limit{Source: SourceContainer, ContainerLimit: 1000, GoMemLimit: 500, Ratio: 0.5},
			wantCalls: []int64{500},
		},
		{
			name:      "ratio out of range",
			env:       map[string]string{"MEMORY_LIMIT": "1000", "MEMORY_RATIO": "1.5"},
			want:      Limit{Source: SourceContainer, ContainerLimit: 1000, GoMemLimit: 900, Ratio: DefaultRatio},
			wantCalls: []int64{900},
		},
		{
			name: "invalid limit",
			env:  map[string]string{"MEMORY_LIMIT": "lots"},
			want: Limit{Source: SourceNone},
		},
		{
			name:      "GOMEMLIMIT wins",
			env:       map[string]string{"GOMEMLIMIT": "256MiB", "MEMORY_LIMIT": "1000"},
			want:      Limit{Source: SourceGoEnv, GoMemLimit: 268435456},
			wantCalls: []int64{-1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := stubSetLimit(t, 268435456)

			got := Apply(fakeEnv(tt.env))
			if got != tt.want {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
			if len(*calls) != len(tt.wantCalls) {
				t.Fatalf("SetMemoryLimit calls = %v, want %v", *calls, tt.wantCalls)
			}
			for i := range tt.wantCalls {
				if (*calls)[i] != tt.wantCalls[i] {
					t.Errorf("SetMemoryLimit call %d = %d, want %d", i, (*calls)[i], tt.wantCalls[i])
				}
			}
		})
	}
}

func TestLimitString(t *testing.T) {
	tests := []struct {
		limit Limit
		want  string
	}{
		{Limit{Source: SourceNone}, "not configured"},
		{Limit{Source: SourceGoEnv, GoMemLimit: 256 << 20}, "256.0 MiB (from GOMEMLIMIT)"},
		{Limit{Source: SourceContainer, ContainerLimit: 1 << 30, GoMemLimit: 512 << 20, Ratio: 0.5}, "512.0 MiB (50% of 1.0 GiB container limit)"},
	}
	for _, tt := range tests {
		if got := tt.limit.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if (Limit{Source: SourceNone}).Configured() {
		t.Error("SourceNone should not be configured")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		512:     "512 B",
		1024:    "1.0 KiB",
		1536:    "1.5 KiB",
		1 << 20: "1.0 MiB",
		5 << 30: "5.0 GiB",
	}
	for in, want := range tests {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
