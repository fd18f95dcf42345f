// Package detect defines the ingredient detector contract and reduces raw
// detections to ingredient labels.
package detect

import (
	"context"
	"io"
	"sort"
	"strconv"
)

// IngredientPrompt is the shared prompt used by the vision-model adapters.
const IngredientPrompt = `List every food ingredient you can see in this photo.
Respond in plain text with one ingredient per line, using a short lowercase
name (e.g. "egg", "tomato"). Do not add quantities, numbering or commentary.
If there is no food in the photo, respond with an empty message.`

type Detector interface {
	Detect(ctx context.Context, r io.Reader, mimeType string) (*Result, error)
}

// Box is a single detected region, reduced to the class it was assigned.
type Box struct {
	Class      int
	Confidence float64
}

// Result is the raw output of one detection call. Names maps class indices to
// label names and may list classes that no box refers to.
type Result struct {
	Boxes []Box
	Names map[int]string
}

// Empty reports whether the detector found nothing.
func (r *Result) Empty() bool {
	return r == nil || len(r.Boxes) == 0
}

// Labels resolves each box's class to its label name and returns the unique
// names in sorted order. A class missing from Names is rendered as its index.
func (r *Result) Labels() []string {
	if r.Empty() {
		return []string{}
	}
	seen := make(map[string]struct{}, len(r.Boxes))
	labels := make([]string, 0, len(r.Boxes))
	for _, b := range r.Boxes {
		name, ok := r.Names[b.Class]
		if !ok {
			name = strconv.Itoa(b.Class)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		labels = append(labels, name)
	}
	sort.Strings(labels)
	return labels
}
