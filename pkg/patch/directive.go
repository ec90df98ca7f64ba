package patch

import (
	"fmt"

	"github.com/macropower/gradlepin/pkg/dialect"
)

// Directive is a declarative edit applied by [Apply]. The set of directives
// is closed: [EnsureBlock], [EnsureSetting], [EnsureListEntry] and
// [ReplaceBlockBody].
type Directive interface {
	fmt.Stringer
	target() string
}

// EnsureBlock requires a block to exist at Path.
type EnsureBlock struct {
	Path string
}

// EnsureSetting requires a key/value line at the direct level of the block at
// Path. Existing lines for the key have their value replaced; otherwise a new
// line becomes the first line of the body.
type EnsureSetting struct {
	Path    string
	Setting dialect.Setting
}

// EnsureListEntry requires an entry to appear somewhere in the block at Path.
type EnsureListEntry struct {
	Path  string
	Entry dialect.Entry
}

// ReplaceBlockBody overwrites the body of the block at Path with a canonical
// rendering of Body.
type ReplaceBlockBody struct {
	Path string
	Body []Canonical
}

// Canonical is one item of a canonical block body: either a statement or a
// nested block with its own body.
type Canonical struct {
	Statement dialect.Statement
	Block     string
	Body      []Canonical
}

// Line returns a canonical statement.
func Line(s dialect.Statement) Canonical {
	return Canonical{Statement: s}
}

// Nested returns a canonical nested block.
func Nested(name string, body ...Canonical) Canonical {
	return Canonical{Block: name, Body: body}
}

func (d EnsureBlock) target() string      { return d.Path }
func (d EnsureSetting) target() string    { return d.Path }
func (d EnsureListEntry) target() string  { return d.Path }
func (d ReplaceBlockBody) target() string { return d.Path }

func (d EnsureBlock) String() string {
	return fmt.Sprintf("EnsureBlock(%s)", d.Path)
}

func (d EnsureSetting) String() string {
	return fmt.Sprintf("EnsureSetting(%s, %s, %s)", d.Path, d.Setting.Key, d.Setting.Kind)
}

func (d EnsureListEntry) String() string {
	return fmt.Sprintf("EnsureListEntry(%s, %s)", d.Path, d.Entry.Render(dialect.Preferred.Renderer()))
}

func (d ReplaceBlockBody) String() string {
	return fmt.Sprintf("ReplaceBlockBody(%s, %d items)", d.Path, len(d.Body))
}

// Action describes what a directive did.
type Action string

const (
	ActionCreated   Action = "created"
	ActionInserted  Action = "inserted"
	ActionReplaced  Action = "replaced"
	ActionAppended  Action = "appended"
	ActionUnchanged Action = "unchanged"
)

// Outcome pairs a directive with its action.
type Outcome struct {
	Directive Directive
	Action    Action
}

// Result summarizes an [Apply] call.
type Result struct {
	Outcomes []Outcome
	// Changed reports whether the serialized document differs from the input.
	Changed bool
	// Degraded reports that the input could not be parsed into blocks and
	// content was appended at the end instead.
	Degraded bool
}
