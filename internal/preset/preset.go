// Package preset holds the thesis presets: named, fixed topic queries
// representing an investment theme. The mapping is static and 1:1, the
// listing order never changes between calls.
package preset

import "fmt"

// Preset maps a display label to the GitHub topic it searches for.
type Preset struct {
	Label string `json:"label"`
	Topic string `json:"topic"`
}

// Custom is the pseudo preset that passes a free-text topic through.
const Custom = "Custom"

var presets = []Preset{
	{Label: "Generative AI", Topic: "generative-ai"},
	{Label: "Autonomous Agents", Topic: "autonomous-agents"},
	{Label: "LLM Ops", Topic: "llm-ops"},
	{Label: "RAG", Topic: "rag"},
	{Label: "Rust", Topic: "rust"},
	{Label: "DeFi", Topic: "defi"},
	{Label: "Vector Database", Topic: "vector-database"},
	{Label: "WASM", Topic: "wasm"},
}

// List returns the presets in their fixed display order.
func List() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Resolve returns the topic query for a preset label. Labels and topics are
// both accepted so the CLI can take either form.
func Resolve(label string) (string, error) {
	for _, p := range presets {
		if p.Label == label || p.Topic == label {
			return p.Topic, nil
		}
	}
	return "", fmt.Errorf("unknown thesis preset: %q", label)
}
