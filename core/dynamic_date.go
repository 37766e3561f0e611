package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dynamicDatePrefix = "$date:"

var dateLayouts = map[string]string{
	"day":      "2006-01-02",
	"month":    "2006-01",
	"year":     "2006",
	"datetime": "2006-01-02 15:04:05",
	"compact":  "20060102",
}

// ParseDynamicDate expands "$date:format:unit:offset" relative to base.
// Example: "$date:day:day:-1" is yesterday as "2006-01-02".
// Anything without the prefix is returned unchanged.
func ParseDynamicDate(expression string, base time.Time) (string, error) {
	if !strings.HasPrefix(expression, dynamicDatePrefix) {
		return expression, nil
	}

	parts := strings.Split(strings.TrimPrefix(expression, dynamicDatePrefix), ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid dynamic date format: %s", expression)
	}
	format, unit, offsetStr := parts[0], parts[1], parts[2]

	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		return "", fmt.Errorf("invalid offset in dynamic date: %s", expression)
	}

	var target time.Time
	switch unit {
	case "day":
		target = base.AddDate(0, 0, offset)
	case "month":
		target = base.AddDate(0, offset, 0)
	case "year":
		target = base.AddDate(offset, 0, 0)
	default:
		return "", fmt.Errorf("unsupported unit in dynamic date: %s", unit)
	}

	layout, ok := dateLayouts[format]
	if !ok {
		layout = dateLayouts["day"]
	}
	return target.Format(layout), nil
}
