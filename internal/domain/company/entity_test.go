package company

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme":              "acme",
		"  Acme Widgets  ":  "acme-widgets",
		"Smith & Sons, Ltd": "smith-sons-ltd",
		"---":               "",
		"Café 42":           "caf-42",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
