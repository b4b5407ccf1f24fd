package markdown

// Options controls how Markdown is parsed.
type Options struct{}

// LinkKind identifies the construct a destination was found in.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Destination is a link destination located in the source. Start and End
// are byte offsets into the source with End exclusive, so
// source[Start:End] == Value.
type Destination struct {
	Kind  LinkKind
	Value string
	Start int
	End   int
}

// Edit returns a byte-range edit replacing the destination with href.
func (d Destination) Edit(href string) Edit {
	return Edit{Start: d.Start, End: d.End, Replacement: []byte(href)}
}
