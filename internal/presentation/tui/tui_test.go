package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/regula/internal/convert"
	"github.com/aretw0/regula/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsMarkdown_RegexToDFA(t *testing.T) {
	res := convert.RegexToDFA("(a|b)*abb")
	require.True(t, res.Success)

	md := tui.StepsMarkdown(res.Steps)
	assert.Contains(t, md, "## 1. Create Augmented Regular Expression")
	assert.Contains(t, md, "`(a|b)*abb` → `((a|b)*abb)#`")
	assert.Contains(t, md, "- `·` nullable=false firstpos={1,2,3} lastpos={6}")
	assert.Contains(t, md, "- `a (1)` nullable=false firstpos={1} lastpos={1}")
	assert.Contains(t, md, "| position | symbol | followpos |")
	assert.Contains(t, md, "| 1 | `a` | {1,2,3} |")
	assert.Contains(t, md, "| DFA state | stands for |")
}

func TestStepsMarkdown_DFAToRegex(t *testing.T) {
	dfa := convert.RegexToDFA("a|b").Value
	res := convert.DFAToRegex(dfa)
	require.True(t, res.Success)

	md := tui.StepsMarkdown(res.Steps)
	assert.Contains(t, md, "| edge | label |")
	assert.Contains(t, md, "Order: ")
	assert.Contains(t, md, "passes)")
	assert.NotContains(t, md, "```json", "every payload has a dedicated rendering")
}

func TestRendererAndBanner(t *testing.T) {
	out, err := tui.NewRenderer()("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")

	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.NotEmpty(t, buf.String())
	assert.Contains(t, tui.Status(true, "done"), "done")
}
