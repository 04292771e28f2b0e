package zoom

import (
	"slices"
	"strings"

	"github.com/tanema/gween/ease"

	"github.com/matzehuels/sunburst/pkg/errors"
)

// DefaultEasing is the name of the easing used when none is configured.
const DefaultEasing = "cubic-in-out"

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"quad-in":      ease.InQuad,
	"quad-out":     ease.OutQuad,
	"quad-in-out":  ease.InOutQuad,
	"cubic-in":     ease.InCubic,
	"cubic-out":    ease.OutCubic,
	"cubic-in-out": ease.InOutCubic,
	"sine-in-out":  ease.InOutSine,
	"expo-in-out":  ease.InOutExpo,
	"circ-in-out":  ease.InOutCirc,
	"back-out":     ease.OutBack,
	"elastic-out":  ease.OutElastic,
	"bounce-out":   ease.OutBounce,
}

// ParseEasing returns the easing function registered under name. Names are
// case-insensitive; an empty name selects [DefaultEasing].
func ParseEasing(name string) (ease.TweenFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultEasing
	}
	fn, ok := easings[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidEasing, "unknown easing %q (valid: %s)", name, strings.Join(Easings(), ", "))
	}
	return fn, nil
}

// Easings returns the registered easing names in sorted order.
func Easings() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
