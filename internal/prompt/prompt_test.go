package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

func TestBuild_EmbedsRequest(t *testing.T) {
	request := `Vrem un "site" de programari & facturare <urgent>`

	got, err := Build(request)
	require.NoError(t, err)

	assert.Contains(t, got, `care este "`+request+`" și să generezi`)
	assert.Contains(t, got, "urmatoareale 5 sectiuni:")
}

func TestBuild_ListsEverySection(t *testing.T) {
	got, err := Build("cerere")
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	for _, sec := range types.ProposalSections {
		heading := sec.Prefix + " " + sec.Title + ":"
		assert.Contains(t, lines, heading, "missing heading line %q", heading)
	}

	// Sections appear in order.
	last := -1
	for _, sec := range types.ProposalSections {
		idx := strings.Index(got, "\n"+sec.Prefix+" "+sec.Title)
		require.GreaterOrEqual(t, idx, 0)
		assert.Greater(t, idx, last, "section %s out of order", sec.Prefix)
		last = idx
	}
}

func TestBuild_HeadingPrefixesStartLines(t *testing.T) {
	got, err := Build("cerere")
	require.NoError(t, err)

	for _, prefix := range types.HeadingPrefixes() {
		assert.Contains(t, got, "\n"+prefix+" ", "renderer prefix %q not at a line start", prefix)
	}
}

func TestBuild_Requirements(t *testing.T) {
	got, err := Build("cerere")
	require.NoError(t, err)

	assert.Contains(t, got, "considerare:\n- Secțiunea financiară:")
	assert.Contains(t, got, "\n- Modalități de plată pentru rideri.\n")
	assert.True(t, strings.HasSuffix(got, "descărca factura generată.\n"))
}

func TestBuild_Deterministic(t *testing.T) {
	a, err := Build("aceeași cerere")
	require.NoError(t, err)
	b, err := Build("aceeași cerere")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
