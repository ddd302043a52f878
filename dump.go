package filelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// dumpContext renders ctx as an indented block of "key: value" lines. Keys are
// sorted, nested values are indented by contextIndent spaces per level and the
// whole block is shifted right by the same amount. Top-level keys are written
// plain even when they read as YAML booleans or numbers.
func dumpContext(ctx Fields) (out string, err error) {
	// The encoder panics with a plain string on kinds it cannot represent.
	defer func() {
		if r := recover(); r != nil {
			out, err = "", newFormatError("context", fmt.Errorf("%v", r))
		}
	}()

	values := normalize(map[string]interface{}(ctx)).(map[string]interface{})
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		var value yaml.Node
		if err := value.Encode(values[k]); err != nil {
			return "", newFormatError("context", err)
		}
		// An untagged key is emitted plain: "y", "no" or "404" stay unquoted.
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, &value)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(contextIndent)
	if err := enc.Encode(doc); err != nil {
		return "", newFormatError("context", err)
	}
	if err := enc.Close(); err != nil {
		return "", newFormatError("context", err)
	}
	return indent(strings.TrimRight(buf.String(), "\n"), strings.Repeat(" ", contextIndent)), nil
}

// compactContext renders ctx as single-line JSON for the {context} placeholder.
func compactContext(ctx Fields) (out string, err error) {
	if len(ctx) == 0 {
		return "{}", nil
	}
	// MarshalJSON implementations may panic; json re-raises those.
	defer func() {
		if r := recover(); r != nil {
			out, err = "", newFormatError("context", fmt.Errorf("%v", r))
		}
	}()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalize(map[string]interface{}(ctx))); err != nil {
		return "", newFormatError("context", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// normalize replaces errors and Stringers with their text so that both
// encoders see plain values. Maps and slices are copied, never mutated.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t
	case error, fmt.Stringer:
		// fmt recovers from nil receivers and prints "<nil>".
		return fmt.Sprint(t)
	case Fields:
		return normalize(map[string]interface{}(t))
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
