package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "plain", line: "egg", expected: "egg"},
		{name: "capitalised", line: "Tomato", expected: "tomato"},
		{name: "dash bullet", line: "- bell pepper", expected: "bell pepper"},
		{name: "star bullet", line: "* onion", expected: "onion"},
		{name: "numbered", line: "3. carrot", expected: "carrot"},
		{name: "numbered paren", line: "12) garlic", expected: "garlic"},
		{name: "leading digits in name", line: "7up", expected: "7up"},
		{name: "numbered name with digits", line: "2. 7up", expected: "7up"},
		{name: "quantity kept", line: "3 eggs", expected: "3 eggs"},
		{name: "bulleted number", line: "- 1. rice", expected: "rice"},
		{name: "pipe layout", line: "Milk | 1 liter | opened", expected: "milk"},
		{name: "empty line", line: "", expected: ""},
		{name: "whitespace only", line: "   ", expected: ""},
		{name: "header line Here", line: "Here are the ingredients:", expected: ""},
		{name: "header line I see", line: "I see the following", expected: ""},
		{name: "header line Based on", line: "Based on the image", expected: ""},
		{name: "colon header", line: "Ingredients:", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLine(tt.line))
		})
	}
}

func TestParseResponse(t *testing.T) {
	res := ParseResponse("Here are the ingredients:\negg\n- tomato\n\nEgg\n")

	assert.Len(t, res.Boxes, 3)
	assert.Equal(t, map[int]string{0: "egg", 1: "tomato"}, res.Names)
	assert.Equal(t, []Box{{Class: 0, Confidence: 1}, {Class: 1, Confidence: 1}, {Class: 0, Confidence: 1}}, res.Boxes)
}

func TestParseResponseNothing(t *testing.T) {
	res := ParseResponse("Here is what I found:\n\n")
	assert.True(t, res.Empty())
	assert.Empty(t, res.Labels())
}
