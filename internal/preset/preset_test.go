package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    string
		wantErr bool
	}{
		{name: "by label", label: "Generative AI", want: "generative-ai"},
		{name: "by topic", label: "vector-database", want: "vector-database"},
		{name: "rust", label: "Rust", want: "rust"},
		{name: "unknown", label: "quantum-basket-weaving", wantErr: true},
		{name: "empty", label: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.label)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListIsStableAndOneToOne(t *testing.T) {
	first := List()
	require.NotEmpty(t, first)

	// Order must not change between calls
	second := List()
	assert.Equal(t, first, second)

	// Mutating the returned slice must not leak into the package
	first[0].Topic = "mutated"
	assert.Equal(t, second, List())

	// Every label resolves to exactly its own topic
	seen := map[string]bool{}
	for _, p := range second {
		topic, err := Resolve(p.Label)
		require.NoError(t, err)
		assert.Equal(t, p.Topic, topic)
		assert.False(t, seen[p.Topic], "duplicate topic %s", p.Topic)
		seen[p.Topic] = true
	}
}
