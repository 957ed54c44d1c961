package blocks_test

import (
	"testing"

	"github.com/fwojciec/blocks"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTheme(t *testing.T) {
	t.Parallel()

	theme := blocks.DefaultTheme()

	assert.Equal(t, 5, theme.Heading)
	assert.Equal(t, 4, theme.Link)
	assert.Equal(t, 3, theme.Code)
	assert.Equal(t, 8, theme.Quote)
	assert.Equal(t, 8, theme.Muted)
	assert.Equal(t, 1, theme.Error)
}
