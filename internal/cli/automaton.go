package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/regula/pkg/domain"
	"gopkg.in/yaml.v3"
)

// LoadAutomaton reads an automaton definition from a YAML or JSON file,
// picked by extension. "-" reads JSON or YAML from stdin.
func LoadAutomaton(path string) (domain.Spec, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Spec{}, fmt.Errorf("failed to read automaton: %w", err)
	}
	return ParseAutomaton(data, filepath.Ext(path))
}

// ParseAutomaton decodes an automaton definition. JSON is used for the
// ".json" extension, YAML (a superset of JSON) otherwise.
func ParseAutomaton(data []byte, ext string) (domain.Spec, error) {
	var raw map[string]any
	if strings.ToLower(ext) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return domain.Spec{}, fmt.Errorf("failed to parse automaton: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Spec{}, fmt.Errorf("failed to parse automaton: %w", err)
		}
	}
	if raw == nil {
		return domain.Spec{}, fmt.Errorf("automaton definition is empty")
	}
	return domain.DecodeSpec(raw)
}
