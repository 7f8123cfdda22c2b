package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/regula"
	"github.com/aretw0/regula/pkg/adapters/memory"
	"github.com/aretw0/regula/pkg/domain"
	"github.com/aretw0/regula/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilonNFA = `{
  "states": [{"id": "q0"}, {"id": "q1"}, {"id": "q2"}],
  "transitions": [
    {"from": "q0", "to": "q1", "symbol": "ε"},
    {"from": "q1", "to": "q2", "symbol": "a"}
  ],
  "alphabet": ["a"],
  "startStates": ["q0"],
  "finalStates": ["q2"]
}`

func TestConvertTools(t *testing.T) {
	s := NewServer(regula.New())
	ctx := context.Background()

	resp, err := s.converter(domain.ConversionRegexToDFA)(ctx, mcp.CallToolRequest{}, ConvertArgs{Regex: "(a|b)*abb"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Steps)
	dfa, ok := resp.Value.(*domain.DFA)
	require.True(t, ok)
	assert.True(t, dfa.AcceptsString("babb"))

	off := false
	resp, err = s.converter(domain.ConversionNFAToRegex)(ctx, mcp.CallToolRequest{}, ConvertArgs{Automaton: epsilonNFA, Steps: &off})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "a", resp.Value)
	assert.Empty(t, resp.Steps)

	resp, err = s.converter(domain.ConversionNFAToDFA)(ctx, mcp.CallToolRequest{}, ConvertArgs{Automaton: epsilonNFA})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestConvertTools_Failures(t *testing.T) {
	s := NewServer(regula.New())
	ctx := context.Background()

	resp, err := s.converter(domain.ConversionRegexToDFA)(ctx, mcp.CallToolRequest{}, ConvertArgs{Regex: "(a"})
	require.NoError(t, err, "conversion failures are results, not tool errors")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.KindSyntax, resp.Error.Kind)

	_, err = s.converter(domain.ConversionDFAToRegex)(ctx, mcp.CallToolRequest{}, ConvertArgs{Automaton: "{not json"})
	assert.Error(t, err)

	_, err = s.converter(domain.ConversionDFAToRegex)(ctx, mcp.CallToolRequest{}, ConvertArgs{})
	assert.Error(t, err)
}

func TestAcceptsTool(t *testing.T) {
	s := NewServer(regula.New())
	ctx := context.Background()

	resp, err := s.handleAccepts(ctx, mcp.CallToolRequest{}, AcceptsArgs{Automaton: epsilonNFA, Input: "a"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.Accepted)

	resp, err = s.handleAccepts(ctx, mcp.CallToolRequest{}, AcceptsArgs{Automaton: epsilonNFA, Input: "a", Deterministic: true})
	require.NoError(t, err)
	assert.False(t, resp.Success, "an ε-NFA is not a valid DFA")
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.KindValidation, resp.Error.Kind)
}

func TestToolsAreListed(t *testing.T) {
	s := NewServer(regula.New(), WithCatalog(memory.NewCatalog(ports.Entry{ID: "a", Kind: ports.EntryRegex, Regex: "a"})))

	reply := s.mcpServer.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(reply)
	require.NoError(t, err)
	for _, name := range []string{"regex_to_dfa", "nfa_to_dfa", "dfa_to_regex", "nfa_to_regex", "accepts"} {
		assert.Contains(t, string(raw), `"`+name+`"`)
	}

	reply = s.mcpServer.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"regula://catalog"}}`))
	raw, err = json.Marshal(reply)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `regula://catalog`)
	assert.Contains(t, string(raw), `\"regex\":\"a\"`)
}
