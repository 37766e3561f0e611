package core

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

func replacePlaceholders(input string, params map[string]string) string {
	output := input
	for k, v := range params {
		output = strings.ReplaceAll(output, fmt.Sprintf("${%s}", k), v)
	}
	return output
}

// mergeParams layers overrides on top of base and expands $date expressions.
func mergeParams(base, overrides map[string]string, now time.Time) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	for k, v := range merged {
		if !strings.HasPrefix(v, dynamicDatePrefix) {
			continue
		}
		val, err := ParseDynamicDate(v, now)
		if err != nil {
			slog.Warn("Ignoring dynamic date parameter", "param", k, "error", err)
			continue
		}
		merged[k] = val
	}
	return merged
}
