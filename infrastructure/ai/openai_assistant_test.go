package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naphtalai-backend/application/ports"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			in:   `{"entities":[]}`,
			want: `{"entities":[]}`,
			ok:   true,
		},
		{
			name: "object wrapped in prose",
			in:   `Here is the data: {"entities":[{"name":"X"}]} thanks`,
			want: `{"entities":[{"name":"X"}]}`,
			ok:   true,
		},
		{
			name: "braces inside strings are skipped",
			in:   `{"name":"curly } brace","note":"{"}`,
			want: `{"name":"curly } brace","note":"{"}`,
			ok:   true,
		},
		{
			name: "escaped quote inside string",
			in:   `{"name":"say \"hi\" {","n":1}`,
			want: `{"name":"say \"hi\" {","n":1}`,
			ok:   true,
		},
		{
			name: "first of several objects",
			in:   `{"a":1} and then {"b":2}`,
			want: `{"a":1}`,
			ok:   true,
		},
		{
			name: "no object",
			in:   "the model refused to answer",
			ok:   false,
		},
		{
			name: "unbalanced object",
			in:   `{"entities":[`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStructured(t *testing.T) {
	t.Run("wrapped payload", func(t *testing.T) {
		entities, connections := parseStructured(`Sure, here you go:
{"entities":[{"name":"Abigail Crane","type":"person","context":"letter author","confidence":0.9}],
"connections":[{"from":"Abigail Crane","to":"Hollow Creek","relationship":"lived_in","confidence":0.7}]}
Let me know if you need more.`)

		require.Len(t, entities, 1)
		assert.Equal(t, "Abigail Crane", entities[0].Name)
		assert.Equal(t, "person", entities[0].Type)
		require.Len(t, connections, 1)
		assert.Equal(t, "lived_in", connections[0].Relationship)
	})

	t.Run("malformed payload degrades to empty", func(t *testing.T) {
		entities, connections := parseStructured(`{"entities": "not a list"}`)
		assert.Nil(t, entities)
		assert.Nil(t, connections)
	})

	t.Run("no payload at all", func(t *testing.T) {
		entities, connections := parseStructured("I could not find any entities.")
		assert.Nil(t, entities)
		assert.Nil(t, connections)
	})
}

func TestNoopAssistant(t *testing.T) {
	result := NewNoopAssistant().Complete(context.Background(), ports.AssistantRequest{
		Query: "anything",
		Mode:  ports.ModeChat,
	})
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.ErrorMessage)
}
