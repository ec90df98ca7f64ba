package patch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/macropower/gradlepin/pkg/blockdoc"
	"github.com/macropower/gradlepin/pkg/dialect"
)

const defaultIndentUnit = "    "

// Apply applies directives in order to a copy of doc and returns the result;
// doc is not modified. Each directive re-scans the current document, so when
// two directives set the same key in the same block the later one wins.
// Missing blocks are created on demand. Inserted lines use the document's
// line ending.
//
// A degraded document cannot be edited structurally. Instead, the directives
// are applied to an empty document and the resulting text is appended to the
// end, unless the document already contains it.
//
// Apply panics if a setting has an unknown [dialect.ValueKind] or if
// [ReplaceBlockBody] targets the document root.
func Apply(doc *blockdoc.Document, d dialect.Dialect, directives []Directive) (*blockdoc.Document, Result) {
	before := doc.String()

	if doc.Degraded() {
		return applyDegraded(before, d, directives)
	}

	e := &engine{doc: doc.Clone(), r: d.Renderer(), unit: indentUnit(before), eol: lineEnding(before)}

	res := Result{Outcomes: make([]Outcome, 0, len(directives))}
	for _, dir := range directives {
		res.Outcomes = append(res.Outcomes, Outcome{Directive: dir, Action: e.apply(dir)})
	}

	res.Changed = e.doc.String() != before

	return e.doc, res
}

func applyDegraded(text string, d dialect.Dialect, directives []Directive) (*blockdoc.Document, Result) {
	eol := lineEnding(text)

	fresh := &engine{doc: blockdoc.Parse(""), r: d.Renderer(), unit: defaultIndentUnit, eol: eol}
	for _, dir := range directives {
		fresh.apply(dir)
	}

	appendix := fresh.doc.String()

	res := Result{Outcomes: make([]Outcome, 0, len(directives)), Degraded: true}

	if appendix == "" || strings.Contains(text, appendix) {
		for _, dir := range directives {
			res.Outcomes = append(res.Outcomes, Outcome{Directive: dir, Action: ActionUnchanged})
		}

		return blockdoc.Parse(text), res
	}

	for _, dir := range directives {
		res.Outcomes = append(res.Outcomes, Outcome{Directive: dir, Action: ActionAppended})
	}

	res.Changed = true

	return blockdoc.Parse(text + separator(text, eol) + appendix), res
}

type engine struct {
	doc  *blockdoc.Document
	r    dialect.Renderer
	unit string
	eol  string
}

func (e *engine) apply(dir Directive) Action {
	switch dir := dir.(type) {
	case EnsureBlock:
		_, created := e.ensure(dir.Path)
		if created {
			return ActionCreated
		}

		return ActionUnchanged

	case EnsureSetting:
		blk, created := e.ensure(dir.Path)

		return createdOr(created, e.setting(blk, dir.Setting))

	case EnsureListEntry:
		blk, created := e.ensure(dir.Path)

		return createdOr(created, e.entry(blk, dir.Entry))

	case ReplaceBlockBody:
		if dir.Path == "" {
			panic("patch: ReplaceBlockBody requires a block path")
		}

		blk, created := e.ensure(dir.Path)

		return createdOr(created, e.replace(blk, dir.Body))
	}

	panic(fmt.Sprintf("patch: unknown directive %T", dir))
}

func createdOr(created bool, a Action) Action {
	if created {
		return ActionCreated
	}

	return a
}

// ensure returns the block at path, creating it and any missing ancestors.
// The empty path is the document root and yields a nil block.
func (e *engine) ensure(path string) (*blockdoc.Block, bool) {
	if path == "" {
		return nil, false
	}

	if b := e.doc.Find(path); b != nil {
		return b, false
	}

	parentPath := ""
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		parentPath = path[:i]
	}

	parent, _ := e.ensure(parentPath)

	child := blockdoc.NewBlock(path, e.childIndent(parent))
	child.Body = []blockdoc.Segment{&blockdoc.Run{Text: e.eol + child.Indent}}
	e.insert(parent, child)

	return child, true
}

func (e *engine) setting(blk *blockdoc.Block, s dialect.Setting) Action {
	key := e.r.Key(s)
	forms := e.r.ValueForms(s)

	matched, changed := false, false

	for _, seg := range e.body(blk) {
		run, ok := seg.(*blockdoc.Run)
		if !ok {
			continue
		}

		text := run.Text
		stmts := blockdoc.Statements(text)

		for i := len(stmts) - 1; i >= 0; i-- {
			st := stmts[i]

			off, ok := e.valueOffset(text[st.Start:st.End], key)
			if !ok {
				continue
			}

			matched = true

			vs := st.Start + off
			if !slices.Contains(forms, text[vs:st.End]) {
				text = text[:vs] + forms[0] + text[st.End:]
				changed = true
			}
		}

		run.Text = text
	}

	switch {
	case changed:
		return ActionReplaced
	case matched:
		return ActionUnchanged
	}

	e.insert(blk, &blockdoc.Run{Text: e.r.Setting(s)})

	return ActionInserted
}

// valueOffset reports where the value starts if stmt assigns key.
func (e *engine) valueOffset(stmt, key string) (int, bool) {
	rest, ok := strings.CutPrefix(stmt, key)
	if !ok {
		return 0, false
	}

	if rest != "" && (isIdentChar(rest[0]) || rest[0] == '.') {
		return 0, false
	}

	trimmed := strings.TrimLeft(rest, " \t")
	off := len(stmt) - len(trimmed)

	switch {
	case strings.HasPrefix(trimmed, "+="):
		off += 2
	case strings.HasPrefix(trimmed, "=") && !strings.HasPrefix(trimmed, "=="):
		off++
	case e.r.Dialect == dialect.Groovy && trimmed != "" && len(trimmed) < len(rest) &&
		!strings.ContainsAny(trimmed[:1], "({.?:=!<>"):
		// Method call style: `key value`.
	default:
		return 0, false
	}

	for off < len(stmt) && (stmt[off] == ' ' || stmt[off] == '\t') {
		off++
	}

	return off, true
}

func (e *engine) entry(blk *blockdoc.Block, entry dialect.Entry) Action {
	text := e.doc.String()
	if blk != nil {
		text = blk.BodyString()
	}

	for _, form := range e.r.EntryForms(entry) {
		if strings.Contains(text, form) {
			return ActionUnchanged
		}
	}

	e.insert(blk, &blockdoc.Run{Text: e.r.Entry(entry)})

	return ActionInserted
}

func (e *engine) replace(blk *blockdoc.Block, body []Canonical) Action {
	ci := e.childIndent(blk)
	unit := e.unit

	if strings.HasPrefix(ci, blk.Indent) && len(ci) > len(blk.Indent) {
		unit = ci[len(blk.Indent):]
	}

	var sb strings.Builder

	sb.WriteString(e.eol)
	e.renderCanonical(&sb, body, ci, unit)
	sb.WriteString(blk.Indent)

	text := sb.String()
	if blk.BodyString() == text {
		return ActionUnchanged
	}

	segs, ok := blockdoc.ParseBody(text, blk.Path)
	if !ok {
		segs = []blockdoc.Segment{&blockdoc.Run{Text: text}}
	}

	blk.Body = segs

	return ActionReplaced
}

func (e *engine) renderCanonical(sb *strings.Builder, body []Canonical, indent, unit string) {
	for _, c := range body {
		if c.Statement == nil {
			sb.WriteString(indent + c.Block + " {" + e.eol)
			e.renderCanonical(sb, c.Body, indent+unit, unit)
			sb.WriteString(indent + "}" + e.eol)

			continue
		}

		sb.WriteString(indent + c.Statement.Render(e.r) + e.eol)
	}
}

func (e *engine) body(blk *blockdoc.Block) []blockdoc.Segment {
	if blk == nil {
		return e.doc.Segments
	}

	return blk.Body
}

// insert places seg as the first line of blk's body, or at the end of the
// document when blk is nil.
func (e *engine) insert(blk *blockdoc.Block, seg blockdoc.Segment) {
	if blk == nil {
		text := e.doc.String()
		e.doc.Segments = blockdoc.Normalize(append(e.doc.Segments,
			&blockdoc.Run{Text: separator(text, e.eol)},
			seg,
			&blockdoc.Run{Text: e.eol},
		))

		return
	}

	ci := e.childIndent(blk)
	lead := &blockdoc.Run{Text: e.eol + ci}

	var body []blockdoc.Segment

	switch {
	case startsWithNewline(blk.Body):
		body = append([]blockdoc.Segment{lead, seg}, blk.Body...)
	case isBlank(blk.Body):
		body = []blockdoc.Segment{lead, seg, &blockdoc.Run{Text: e.eol + blk.Indent}}
	default:
		body = append([]blockdoc.Segment{lead, seg, &blockdoc.Run{Text: e.eol + ci}}, e.unfold(blk)...)
	}

	blk.Body = blockdoc.Normalize(body)
}

// unfold returns blk's body with the leading space of its first line
// removed. A body written on the opening line also gets its closing brace
// moved to a line of its own.
func (e *engine) unfold(blk *blockdoc.Block) []blockdoc.Segment {
	body := slices.Clone(blk.Body)

	if r, ok := body[0].(*blockdoc.Run); ok {
		body[0] = &blockdoc.Run{Text: strings.TrimLeft(r.Text, " \t")}
	}

	if strings.Contains(blk.BodyString(), "\n") {
		return body
	}

	last := len(body) - 1
	if r, ok := body[last].(*blockdoc.Run); ok {
		body[last] = &blockdoc.Run{Text: strings.TrimRight(r.Text, " \t")}
	}

	return append(body, &blockdoc.Run{Text: e.eol + blk.Indent})
}

// childIndent detects the indentation used for lines directly inside blk.
func (e *engine) childIndent(blk *blockdoc.Block) string {
	if blk == nil {
		return ""
	}

	for _, seg := range blk.Body {
		switch seg := seg.(type) {
		case *blockdoc.Run:
			if ind, ok := firstLineIndent(seg.Text); ok {
				return ind
			}

		case *blockdoc.Block:
			if len(seg.Indent) > len(blk.Indent) {
				return seg.Indent
			}
		}
	}

	return blk.Indent + e.unit
}

// indentUnit guesses one level of indentation for text: a tab if any line is
// tab-indented, otherwise the smallest space indentation in use.
func indentUnit(text string) string {
	smallest := 0

	for line := range strings.SplitSeq(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if line[0] == '\t' {
			return "\t"
		}

		n := len(line) - len(strings.TrimLeft(line, " "))
		if n > 0 && (smallest == 0 || n < smallest) {
			smallest = n
		}
	}

	if smallest == 0 {
		return defaultIndentUnit
	}

	return strings.Repeat(" ", smallest)
}

// firstLineIndent returns the indentation of the first line in text that
// starts after a newline and holds something other than a closing brace.
func firstLineIndent(text string) (string, bool) {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return "", false
		}

		text = text[i+1:]

		j := 0
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}

		if j < len(text) && text[j] != '\n' && text[j] != '\r' && text[j] != '}' {
			return text[:j], true
		}
	}
}

func startsWithNewline(body []blockdoc.Segment) bool {
	if len(body) == 0 {
		return false
	}

	r, ok := body[0].(*blockdoc.Run)
	if !ok {
		return false
	}

	return strings.HasPrefix(strings.TrimLeft(r.Text, " \t\r"), "\n")
}

func isBlank(body []blockdoc.Segment) bool {
	for _, seg := range body {
		r, ok := seg.(*blockdoc.Run)
		if !ok || strings.TrimSpace(r.Text) != "" {
			return false
		}
	}

	return true
}

// separator returns the text placed between existing content and an
// appended top-level statement: a line ending to finish the last line plus
// one blank line.
func separator(text, eol string) string {
	switch {
	case text == "", strings.HasSuffix(text, eol+eol):
		return ""
	case strings.HasSuffix(text, "\n"):
		return eol
	}

	return eol + eol
}

// lineEnding reports the line ending text uses, defaulting to "\n".
func lineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}

	return "\n"
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
