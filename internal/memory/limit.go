package memory

import (
	"fmt"
	"math"
	"runtime/debug"
	"strconv"

	"playlist-viewer/internal/logging"
)

// DefaultRatio is the share of the container limit given to the Go heap.
// The service holds little beyond decoded metadata responses, so most of
// the container can go to the heap.
const DefaultRatio = 0.9

// Source tells where the memory limit came from.
type Source string

const (
	SourceNone      Source = "none"
	SourceGoEnv     Source = "GOMEMLIMIT"
	SourceContainer Source = "MEMORY_LIMIT"
)

// Limit describes the soft memory limit applied at startup.
type Limit struct {
	Source         Source
	ContainerLimit int64
	GoMemLimit     int64
	Ratio          float64
}

// Configured reports whether a limit is in effect.
func (l Limit) Configured() bool {
	return l.Source != SourceNone
}

func (l Limit) String() string {
	switch l.Source {
	case SourceGoEnv:
		return fmt.Sprintf("%s (from GOMEMLIMIT)", formatBytes(l.GoMemLimit))
	case SourceContainer:
		return fmt.Sprintf("%s (%.0f%% of %s container limit)", formatBytes(l.GoMemLimit), l.Ratio*100, formatBytes(l.ContainerLimit))
	}
	return "not configured"
}

// setLimit is debug.SetMemoryLimit, replaced in tests.
var setLimit = debug.SetMemoryLimit

// Apply sets the Go soft memory limit from the environment. GOMEMLIMIT wins
// when present (the runtime has already applied it); otherwise a container
// limit in bytes from MEMORY_LIMIT, e.g. via the Kubernetes Downward API,
// is scaled by MEMORY_RATIO (default DefaultRatio).
func Apply(getenv func(string) string) Limit {
	if getenv("GOMEMLIMIT") != "" {
		limit := Limit{Source: SourceNone}
		if current := setLimit(-1); current > 0 && current < math.MaxInt64 {
			limit = Limit{Source: SourceGoEnv, GoMemLimit: current}
		}
		return limit
	}

	raw := getenv("MEMORY_LIMIT")
	if raw == "" {
		return Limit{Source: SourceNone}
	}

	containerLimit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || containerLimit <= 0 {
		logging.Warn("Ignoring invalid MEMORY_LIMIT %q", raw)
		return Limit{Source: SourceNone}
	}

	ratio := DefaultRatio
	if rawRatio := getenv("MEMORY_RATIO"); rawRatio != "" {
		parsed, err := strconv.ParseFloat(rawRatio, 64)
		if err != nil || parsed <= 0 || parsed > 1 {
			logging.Warn("MEMORY_RATIO %q must be in (0, 1], using %.2f", rawRatio, DefaultRatio)
		} else {
			ratio = parsed
		}
	}

	goLimit := int64(float64(containerLimit) * ratio)
	setLimit(goLimit)

	return Limit{
		Source:         SourceContainer,
		ContainerLimit: containerLimit,
		GoMemLimit:     goLimit,
		Ratio:          ratio,
	}
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
