package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/regula"
	"github.com/aretw0/regula/internal/config"
	"github.com/aretw0/regula/internal/logging"
	"github.com/aretw0/regula/pkg/adapters/memory"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/observability"
	"github.com/aretw0/regula/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evenAYAML = `
states:
  - id: even
    isStart: true
    isFinal: true
  - id: odd
transitions:
  - {from: even, to: odd, symbol: a}
  - {from: odd, to: even, symbol: a}
alphabet: [a]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAutomaton(t *testing.T) {
	spec, err := LoadAutomaton(writeFile(t, "even.yaml", evenAYAML))
	require.NoError(t, err)
	dfa := spec.DFA()
	assert.Empty(t, dfa.Validate())
	assert.Equal(t, "even", dfa.StartState())

	spec, err = LoadAutomaton(writeFile(t, "even.json", `{"states":[{"id":"q"}],"transitions":[],"alphabet":["a"],"startState":"q","finalStates":["q"]}`))
	require.NoError(t, err)
	assert.Equal(t, "q", spec.StartState)

	_, err = LoadAutomaton(writeFile(t, "bad.json", `[1, 2]`))
	assert.Error(t, err)

	_, err = LoadAutomaton(writeFile(t, "empty.yaml", ``))
	assert.ErrorContains(t, err, "empty")

	_, err = LoadAutomaton(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	eng := regula.New()
	ctx := context.Background()

	var buf bytes.Buffer
	err := Convert(ctx, eng, &buf, ConvertOptions{Kind: domain.ConversionRegexToDFA, Source: "(a|b)*abb", Format: FormatJSON, Steps: true})
	require.NoError(t, err)
	var res domain.Result[json.RawMessage]
	require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Len(t, res.Steps, 5)

	buf.Reset()
	err = Convert(ctx, eng, &buf, ConvertOptions{Kind: domain.ConversionDFAToRegex, Source: writeFile(t, "even.yaml", evenAYAML), Format: FormatMarkdown})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "## Result")
	assert.NotContains(t, buf.String(), "## 1.", "steps are off")

	buf.Reset()
	err = Convert(ctx, eng, &buf, ConvertOptions{Kind: domain.ConversionRegexToDFA, Source: "a|", Format: FormatMarkdown, Steps: true})
	assert.ErrorIs(t, err, ErrFailed)
	assert.Contains(t, buf.String(), "## Error")
	assert.Contains(t, buf.String(), "SyntaxError")
}

func TestConvert_FromCatalog(t *testing.T) {
	catalog := memory.NewCatalog(ports.Entry{ID: "abb", Kind: ports.EntryRegex, Regex: "(a|b)*abb"})
	eng := regula.New(regula.WithCatalog(catalog))
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, Convert(ctx, eng, &buf, ConvertOptions{Kind: domain.ConversionRegexToDFA, Entry: "abb", Format: FormatJSON}))
	assert.Contains(t, buf.String(), `"success": true`)

	err := Convert(ctx, eng, &buf, ConvertOptions{Kind: domain.ConversionNFAToDFA, Entry: "abb", Format: FormatJSON})
	assert.ErrorContains(t, err, "not an automaton")

	err = Convert(ctx, eng, &buf, ConvertOptions{Kind: domain.ConversionRegexToDFA, Entry: "nope", Format: FormatJSON})
	assert.ErrorIs(t, err, ports.ErrEntryNotFound)

	err = Convert(ctx, regula.New(), &buf, ConvertOptions{Kind: domain.ConversionRegexToDFA, Entry: "abb"})
	assert.ErrorContains(t, err, "no catalog configured")
}

func TestValidateAndAccepts(t *testing.T) {
	eng := regula.New()
	ctx := context.Background()
	spec, err := ParseAutomaton([]byte(evenAYAML), ".yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Validate(eng, &buf, spec, true))
	assert.Contains(t, buf.String(), "valid DFA")

	buf.Reset()
	require.NoError(t, Accepts(ctx, eng, &buf, spec, true, "aa"))
	assert.Contains(t, buf.String(), `accepted: "aa"`)

	buf.Reset()
	assert.ErrorIs(t, Accepts(ctx, eng, &buf, spec, false, "a"), ErrFailed)
	assert.Contains(t, buf.String(), `rejected: "a"`)

	broken := spec
	broken.Alphabet = nil
	buf.Reset()
	assert.ErrorIs(t, Validate(eng, &buf, broken, true), ErrFailed)
	assert.Contains(t, buf.String(), "non-empty alphabet")
}

func TestGraphAndRun(t *testing.T) {
	spec, err := ParseAutomaton([]byte(evenAYAML), ".yaml")
	require.NoError(t, err)

	visited, current := Run(spec.DFA(), domain.Symbols("aaa"))
	assert.Equal(t, []string{"even", "odd", "even", "odd"}, visited)
	assert.Equal(t, "odd", current)

	visited, current = Run(spec.DFA(), []string{"b"})
	assert.Equal(t, []string{"even"}, visited)
	assert.Empty(t, current)

	var buf bytes.Buffer
	trace := "a"
	require.NoError(t, Graph(&buf, spec, true, &trace))
	assert.Contains(t, buf.String(), "class s0 visited;")
	assert.Contains(t, buf.String(), "class s1 current;")

	assert.Error(t, Graph(&buf, spec, false, &trace))
}

func TestListCatalog(t *testing.T) {
	catalog := memory.NewCatalog(
		ports.Entry{ID: "b", Kind: ports.EntryRegex, Regex: "b*", Tags: []string{"x", "y"}},
		ports.Entry{ID: "a", Kind: ports.EntryDFA, Title: "Even a", Automaton: &domain.Spec{}},
	)
	var buf bytes.Buffer
	require.NoError(t, ListCatalog(context.Background(), catalog, &buf))
	out := buf.String()
	assert.Regexp(t, `(?s)ID\s+KIND.*a\s+dfa\s+Even a.*b\s+regex\s+b\*\s+x,y`, out)
}

func TestNewRateLimiter(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	cfg := config.Default()
	limiter, closeFn, err := NewRateLimiter(ctx, cfg, logger)
	require.NoError(t, err)
	assert.Nil(t, limiter, "no quota means no limiter")
	assert.NoError(t, closeFn())

	cfg.HTTP.RateLimit.Requests = 2
	limiter, _, err = NewRateLimiter(ctx, cfg, logger)
	require.NoError(t, err)
	assert.IsType(t, &memory.Limiter{}, limiter)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	cfg.Redis.Addr = mr.Addr()
	limiter, closeFn, err = NewRateLimiter(ctx, cfg, logger)
	require.NoError(t, err)
	ports.RunRateLimiterContract(t, limiter, 2)
	assert.NoError(t, closeFn())

	mr.Close()
	_, _, err = NewRateLimiter(ctx, cfg, logger)
	assert.ErrorContains(t, err, "redis unreachable")
}

func TestNewEngine(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abb.md"), []byte("---\nkind: regex\nregex: (a|b)*abb\n---\n"), 0644))

	cfg := config.Default()
	cfg.Catalog = dir
	metrics := observability.NewMetrics()
	eng, err := NewEngine(cfg, logging.NewNop(), metrics)
	require.NoError(t, err)
	require.NotNil(t, eng.Catalog())

	var buf bytes.Buffer
	require.NoError(t, Convert(context.Background(), eng, &buf, ConvertOptions{Kind: domain.ConversionRegexToDFA, Entry: "abb", Format: FormatJSON}))

	families, err := metrics.Registry.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "regula_conversions_total")
}
