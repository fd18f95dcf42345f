package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelsDeduplicatesAndSorts(t *testing.T) {
	res := &Result{
		Boxes: []Box{{Class: 2}, {Class: 0}, {Class: 2}, {Class: 1}, {Class: 0}},
		Names: map[int]string{0: "tomato", 1: "egg", 2: "broccoli", 3: "banana"},
	}

	assert.Equal(t, []string{"broccoli", "egg", "tomato"}, res.Labels())
}

func TestLabelsUnknownClass(t *testing.T) {
	res := &Result{
		Boxes: []Box{{Class: 7}},
		Names: map[int]string{0: "egg"},
	}

	assert.Equal(t, []string{"7"}, res.Labels())
}

func TestEmpty(t *testing.T) {
	var nilResult *Result
	assert.True(t, nilResult.Empty())
	assert.Equal(t, []string{}, nilResult.Labels())

	assert.True(t, (&Result{Names: map[int]string{0: "egg"}}).Empty())
	assert.False(t, (&Result{Boxes: []Box{{Class: 0}}}).Empty())
}
