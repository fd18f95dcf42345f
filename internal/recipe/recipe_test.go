package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubGenerator struct {
	prompt string
	text   string
	err    error
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func TestBuildPromptText(t *testing.T) {
	p := BuildPrompt("I have eggs and flour", nil)

	assert.True(t, strings.HasPrefix(p, Persona+"\n\n"))
	assert.Contains(t, p, "User request: I have eggs and flour\n")
	assert.NotContains(t, p, "Available ingredients")
	assert.True(t, strings.HasSuffix(p, "\n"+Instruction))
}

func TestBuildPromptIngredients(t *testing.T) {
	p := BuildPrompt("Suggest a creative and delicious recipe using these ingredients", []string{"egg", "tomato"})

	assert.Contains(t, p, "User request: Suggest a creative and delicious recipe using these ingredients\n")
	assert.Contains(t, p, "Available ingredients: egg, tomato\n")

	// The ingredient line sits between the request and the instruction.
	assert.Less(t, strings.Index(p, "User request:"), strings.Index(p, "Available ingredients:"))
	assert.Less(t, strings.Index(p, "Available ingredients:"), strings.Index(p, Instruction))
}

func TestSuggestSuccess(t *testing.T) {
	g := &stubGenerator{text: "Shakshuka"}

	r := Suggest(context.Background(), g, "eggs", []string{"egg"})

	assert.True(t, r.OK())
	assert.Equal(t, "Shakshuka", r.Display())
	assert.Equal(t, BuildPrompt("eggs", []string{"egg"}), g.prompt)
}

func TestSuggestFailure(t *testing.T) {
	g := &stubGenerator{err: errors.New("quota exceeded")}

	r := Suggest(context.Background(), g, "eggs", nil)

	assert.False(t, r.OK())
	assert.Empty(t, r.Text)
	assert.Equal(t, "Error generating recipe: quota exceeded", r.Display())
}

func TestReplyDisplayEmptySuccess(t *testing.T) {
	assert.Equal(t, "", Reply{}.Display())
	assert.True(t, Reply{}.OK())
}
