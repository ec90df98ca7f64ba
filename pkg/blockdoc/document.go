package blockdoc

import (
	"strings"
)

// Segment is either a [*Run] or a [*Block].
type Segment interface {
	String() string
	segment()
}

// Run is opaque text that is preserved verbatim.
type Run struct {
	Text string
}

func (r *Run) String() string { return r.Text }

func (*Run) segment() {}

// Block is a named, brace-delimited section such as `android { ... }`.
type Block struct {
	// Name is the identifier before the opening brace.
	Name string
	// Path is the dot-separated list of block names from the document root.
	Path string
	// Open is the raw text from the identifier through the opening brace.
	Open  string
	Close string
	// Indent is the leading whitespace of the line the block opens on.
	Indent string
	Body   []Segment
}

func (b *Block) String() string {
	var sb strings.Builder

	b.write(&sb)

	return sb.String()
}

// BodyString returns the text between the braces.
func (b *Block) BodyString() string {
	return join(b.Body)
}

func (b *Block) write(sb *strings.Builder) {
	sb.WriteString(b.Open)

	for _, s := range b.Body {
		writeSegment(sb, s)
	}

	sb.WriteString(b.Close)
}

func (*Block) segment() {}

// NewBlock returns an empty block at the given path. The block renders as
// `name {` followed by a newline and the closing brace at indent.
func NewBlock(path, indent string) *Block {
	name := path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		name = path[i+1:]
	}

	return &Block{
		Name:   name,
		Path:   path,
		Open:   name + " {",
		Close:  "}",
		Indent: indent,
		Body:   []Segment{&Run{Text: "\n" + indent}},
	}
}

// Document is a lossless view of a brace-structured file.
type Document struct {
	Segments []Segment
	degraded bool
}

// String serializes the document.
func (d *Document) String() string {
	return join(d.Segments)
}

// Degraded reports whether the braces in the source could not be balanced. A
// degraded document holds a single [Run] and exposes no blocks.
func (d *Document) Degraded() bool {
	return d.degraded
}

// Find returns the first block with exactly the given path, or nil.
func (d *Document) Find(path string) *Block {
	if path == "" {
		return nil
	}

	var found *Block

	walk(d.Segments, func(b *Block) bool {
		if b.Path == path {
			found = b

			return false
		}

		return true
	})

	return found
}

// Blocks returns every block in document order, parents before children.
func (d *Document) Blocks() []*Block {
	var out []*Block

	walk(d.Segments, func(b *Block) bool {
		out = append(out, b)

		return true
	})

	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{
		Segments: cloneSegments(d.Segments),
		degraded: d.degraded,
	}
}

func cloneSegments(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))

	for _, s := range segs {
		switch s := s.(type) {
		case *Run:
			out = append(out, &Run{Text: s.Text})
		case *Block:
			b := *s
			b.Body = cloneSegments(s.Body)
			out = append(out, &b)
		}
	}

	return out
}

// walk visits blocks depth-first until f returns false.
func walk(segs []Segment, f func(*Block) bool) bool {
	for _, s := range segs {
		b, ok := s.(*Block)
		if !ok {
			continue
		}

		if !f(b) || !walk(b.Body, f) {
			return false
		}
	}

	return true
}

// Normalize merges adjacent runs and drops empty ones.
func Normalize(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))

	for _, s := range segs {
		r, ok := s.(*Run)
		if !ok {
			out = append(out, s)

			continue
		}

		if r.Text == "" {
			continue
		}

		if n := len(out); n > 0 {
			if prev, ok := out[n-1].(*Run); ok {
				out[n-1] = &Run{Text: prev.Text + r.Text}

				continue
			}
		}

		out = append(out, r)
	}

	return out
}

func join(segs []Segment) string {
	var sb strings.Builder

	for _, s := range segs {
		writeSegment(&sb, s)
	}

	return sb.String()
}

func writeSegment(sb *strings.Builder, s Segment) {
	switch s := s.(type) {
	case *Run:
		sb.WriteString(s.Text)
	case *Block:
		s.write(sb)
	}
}
