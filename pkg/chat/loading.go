package chat

import "time"

// LoadingInterval is how long each loading step stays on screen.
const LoadingInterval = 2 * time.Second

var loadingSteps = []string{
	"Scanning UU ITE & PDP...",
	"Analyzing regulatory context...",
	"Cross-referencing Permenkominfo...",
	"Formulating compliance advice...",
}

// LoadingStep returns the step text for tick n, wrapping around.
func LoadingStep(n int) string {
	if n < 0 {
		n = -n
	}
	return loadingSteps[n%len(loadingSteps)]
}

// LoadingSteps returns a copy of all step texts in display order.
func LoadingSteps() []string {
	out := make([]string, len(loadingSteps))
	copy(out, loadingSteps)
	return out
}
