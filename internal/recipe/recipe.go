// Package recipe assembles recipe prompts and wraps the language-model call
// in a result type that separates success from failure.
package recipe

import (
	"context"
	"strings"
)

// Persona opens every prompt sent to the generator.
const Persona = `You are SmartBite, a friendly and creative AI chef.
You suggest practical home-cooking recipes. For each recipe give a short
title, the ingredient list with quantities, and numbered preparation steps.
Prefer the ingredients the user already has and point out anything extra
they would need to buy.`

// Instruction closes every prompt.
const Instruction = "Please suggest a delicious recipe!"

// ErrorPrefix precedes the error message shown when generation fails.
const ErrorPrefix = "Error generating recipe: "

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt combines the persona, the user's request and, when present,
// the available ingredients.
func BuildPrompt(userText string, ingredients []string) string {
	var b strings.Builder
	b.WriteString(Persona)
	b.WriteString("\n\n")
	b.WriteString("User request: ")
	b.WriteString(userText)
	b.WriteString("\n")
	if len(ingredients) > 0 {
		b.WriteString("Available ingredients: ")
		b.WriteString(strings.Join(ingredients, ", "))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(Instruction)
	return b.String()
}

// Reply is the outcome of one generation call: Text on success, Err on failure.
type Reply struct {
	Text string
	Err  error
}

func (r Reply) OK() bool {
	return r.Err == nil
}

// Display returns the text to render for the reply. Failures render as
// ErrorPrefix followed by the error message.
func (r Reply) Display() string {
	if r.Err != nil {
		return ErrorPrefix + r.Err.Error()
	}
	return r.Text
}

// Suggest builds the prompt and runs the generator. It never returns an
// error; failures are carried in the Reply.
func Suggest(ctx context.Context, g Generator, userText string, ingredients []string) Reply {
	text, err := g.Generate(ctx, BuildPrompt(userText, ingredients))
	if err != nil {
		return Reply{Err: err}
	}
	return Reply{Text: text}
}
