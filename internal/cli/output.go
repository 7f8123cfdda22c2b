package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/regula/internal/presentation/tui"
	"github.com/aretw0/regula/pkg/domain"
	"golang.org/x/term"
)

// Output formats.
const (
	FormatAuto     = "auto"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatPretty   = "pretty"
)

// ResolveFormat turns "auto" into pretty on a terminal and JSON otherwise.
func ResolveFormat(format string, w io.Writer) string {
	if format != FormatAuto && format != "" {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return FormatPretty
	}
	return FormatJSON
}

// PrintResult writes a conversion result. Steps are omitted unless withSteps.
func PrintResult[T any](w io.Writer, format string, result domain.Result[T], withSteps bool) error {
	if !withSteps {
		result.Steps = []domain.Step{}
	}

	switch ResolveFormat(format, w) {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatMarkdown:
		_, err := io.WriteString(w, resultMarkdown(result))
		return err
	case FormatPretty:
		rendered, err := tui.NewRenderer()(resultMarkdown(result))
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
		if result.Success {
			_, err = fmt.Fprintln(w, tui.Status(true, "conversion succeeded"))
		} else {
			_, err = fmt.Fprintln(w, tui.Status(false, result.Error.Error()))
		}
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

func resultMarkdown[T any](result domain.Result[T]) string {
	md := tui.StepsMarkdown(result.Steps)
	if !result.Success {
		md += fmt.Sprintf("## Error\n\n%s\n", result.Error.Error())
		for _, d := range result.Error.Details {
			md += fmt.Sprintf("- %s\n", d)
		}
		return md
	}

	md += "## Result\n\n"
	switch v := any(result.Value).(type) {
	case string:
		md += fmt.Sprintf("`%s`\n", v)
	default:
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return md
		}
		md += fmt.Sprintf("```json\n%s\n```\n", raw)
	}
	return md
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	return writeJSON(w, v)
}
