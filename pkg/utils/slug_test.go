package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Infinity Pool in Herzliya":   "infinity-pool-in-herzliya",
		"  Spa & Pool -- 2024  ":      "spa-pool-2024",
		"Family Pool, Ra'anana":       "family-pool-raanana",
		"בריכה ביתית":                 "",
		"Mixed בריכה Project":         "mixed-project",
		"already-a-slug":              "already-a-slug",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "input %q", in)
	}
}
