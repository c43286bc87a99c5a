package recipe

import (
	"iter"
	"slices"
)

// Kind identifies the role of an element within a recipe.
type Kind int

const (
	Title      Kind = 1
	Subtitle   Kind = 2
	Quote      Kind = 3
	Note       Kind = 10 // reserved, no line prefix produces it
	Step       Kind = 20
	Ingredient Kind = 21
)

// String renders the lower-case kind label used in logs and previews.
func (k Kind) String() string {
	switch k {
	case Title:
		return "title"
	case Subtitle:
		return "subtitle"
	case Quote:
		return "quote"
	case Note:
		return "note"
	case Step:
		return "step"
	case Ingredient:
		return "ingredient"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case Title, Subtitle, Quote, Note, Step, Ingredient:
		return true
	default:
		return false
	}
}

// Element is one classified line. Note and Guide are only populated for
// ingredients and are nil when the source field was empty.
type Element struct {
	Kind  Kind    `json:"kind"`
	Text  string  `json:"text"`
	Note  *string `json:"note,omitempty"`
	Guide *string `json:"guide,omitempty"`
}

// NoteValue returns the note or an empty string when absent.
func (e Element) NoteValue() string {
	if e.Note == nil {
		return ""
	}
	return *e.Note
}

// GuideValue returns the guide or an empty string when absent.
func (e Element) GuideValue() string {
	if e.Guide == nil {
		return ""
	}
	return *e.Guide
}

// Equal compares two elements by value, including optional fields.
func (e Element) Equal(other Element) bool {
	return e.Kind == other.Kind &&
		e.Text == other.Text &&
		equalOptional(e.Note, other.Note) &&
		equalOptional(e.Guide, other.Guide)
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Recipe is the ordered element sequence parsed from a single file. It is not
// modified after construction; accessors hand out copies or iterators.
type Recipe struct {
	path     string
	elements []Element
}

// New builds a Recipe from already classified elements.
func New(path string, elements []Element) *Recipe {
	return &Recipe{
		path:     path,
		elements: slices.Clone(elements),
	}
}

// Path returns the source path the recipe was parsed from, if any.
func (r *Recipe) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Len returns the number of elements.
func (r *Recipe) Len() int {
	if r == nil {
		return 0
	}
	return len(r.elements)
}

// Slice returns a copy of the elements in file order.
func (r *Recipe) Slice() []Element {
	if r == nil {
		return nil
	}
	return slices.Clone(r.elements)
}

// Elements yields every element with its position.
func (r *Recipe) Elements() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		if r == nil {
			return
		}
		for i, el := range r.elements {
			if !yield(i, el) {
				return
			}
		}
	}
}

// Filter lazily yields the elements of the given kind in file order.
func (r *Recipe) Filter(kind Kind) iter.Seq[Element] {
	return func(yield func(Element) bool) {
		if r == nil {
			return
		}
		for _, el := range r.elements {
			if el.Kind != kind {
				continue
			}
			if !yield(el) {
				return
			}
		}
	}
}

// Ingredients lazily yields the ingredient elements in file order.
func (r *Recipe) Ingredients() iter.Seq[Element] {
	return r.Filter(Ingredient)
}

// Title returns the text of the first title element.
func (r *Recipe) Title() (string, bool) {
	for el := range r.Filter(Title) {
		return el.Text, true
	}
	return "", false
}

// Equal reports whether both recipes hold structurally identical elements.
// The source path is not compared.
func (r *Recipe) Equal(other *Recipe) bool {
	if r == nil || other == nil {
		return r == nil && other == nil
	}
	return slices.EqualFunc(r.elements, other.elements, Element.Equal)
}
