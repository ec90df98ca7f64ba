package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// ValueKind selects how a setting's value is spelled.
type ValueKind int

const (
	KindString ValueKind = iota + 1
	KindBoolean
	KindEnum
	KindVersion
	KindList
)

// DefaultQualifier is the enum type used when a setting does not name one.
const DefaultQualifier = "JavaVersion"

var kindNames = map[ValueKind]string{
	KindString:  "string",
	KindBoolean: "boolean",
	KindEnum:    "enum",
	KindVersion: "version",
	KindList:    "list",
}

func (k ValueKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// ParseKind converts a kind name, as used in policy files.
func ParseKind(s string) (ValueKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "str" {
		return KindString, nil
	}

	if s == "bool" {
		return KindBoolean, nil
	}

	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown value kind %q", s)
}

// Op is the operator joining a setting's key and value.
type Op int

const (
	// OpDefault renders the dialect's natural form: `key = value` for Kotlin
	// and `key value` for Groovy.
	OpDefault Op = iota
	// OpAssign always renders `key = value`.
	OpAssign
	// OpAppend renders `key += value`.
	OpAppend
)

// Statement is anything a [Renderer] can turn into a single line.
type Statement interface {
	Render(r Renderer) string
}

// Setting is a key/value line inside a block.
type Setting struct {
	Key   string
	Value string
	// Values holds the items of a [KindList] setting.
	Values []string
	// Qualifier is the enum type for [KindEnum]; defaults to [DefaultQualifier].
	Qualifier string
	Kind      ValueKind
	Op        Op
	// BooleanProperty marks a Kotlin boolean property spelled with an `is`
	// prefix (e.g. isCoreLibraryDesugaringEnabled).
	BooleanProperty bool
}

func (s Setting) Render(r Renderer) string {
	return r.Setting(s)
}

// EntryKind distinguishes the shapes of list entries.
type EntryKind int

const (
	EntryRaw EntryKind = iota
	EntryCall
	EntryPlugin
)

// Entry is a statement that must be present in a block, such as a
// dependency declaration or a plugin request.
type Entry struct {
	// Name is the configuration or function name for calls, or the plugin id.
	Name    string
	Arg     string
	Version string
	Text    string
	Kind    EntryKind
	NoApply bool
}

// Dependency returns a call entry such as `implementation("a:b:1")`.
func Dependency(configuration, notation string) Entry {
	return Entry{Kind: EntryCall, Name: configuration, Arg: notation}
}

// Call is an alias of [Dependency] for non-dependency calls like include.
func Call(name, arg string) Entry {
	return Dependency(name, arg)
}

// Plugin returns a plugin request entry.
func Plugin(id, version string, apply bool) Entry {
	return Entry{Kind: EntryPlugin, Name: id, Version: version, NoApply: !apply}
}

// Raw returns an entry that is used verbatim in every dialect.
func Raw(text string) Entry {
	return Entry{Kind: EntryRaw, Text: text}
}

func (e Entry) Render(r Renderer) string {
	return r.Entry(e)
}

type table struct {
	escaper   *strings.Replacer
	assign    string
	statement string
	appendOp  string
	listOpen  string
	listClose string
	callOpen  string
	callClose string
	altQuotes []byte
	quote     byte
}

var tables = map[Dialect]*table{
	Kotlin: {
		quote:     '"',
		escaper:   strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`),
		assign:    " = ",
		statement: " = ",
		appendOp:  " += ",
		listOpen:  "setOf(",
		listClose: ")",
		callOpen:  "(",
		callClose: ")",
	},
	Groovy: {
		quote:     '\'',
		escaper:   strings.NewReplacer(`\`, `\\`, `'`, `\'`),
		assign:    " = ",
		statement: " ",
		appendOp:  " += ",
		listOpen:  "[",
		listClose: "]",
		callOpen:  " ",
		callClose: "",
		altQuotes: []byte{'"'},
	},
}

// Renderer spells settings and entries in one dialect.
type Renderer struct {
	t       *table
	Dialect Dialect
}

// NewRenderer returns the [Renderer] for d.
func NewRenderer(d Dialect) Renderer {
	t, ok := tables[d]
	if !ok {
		panic(fmt.Sprintf("dialect: no rendering table for %v", d))
	}

	return Renderer{Dialect: d, t: t}
}

// Renderer returns the [Renderer] for d.
func (d Dialect) Renderer() Renderer {
	return NewRenderer(d)
}

// Quote renders a string literal.
func (r Renderer) Quote(s string) string {
	q := string(r.t.quote)

	return q + r.t.escaper.Replace(s) + q
}

// Key returns the key token that starts the setting's line.
func (r Renderer) Key(s Setting) string {
	if s.BooleanProperty && r.Dialect == Kotlin && !strings.HasPrefix(s.Key, "is") {
		return "is" + strcase.ToCamel(s.Key)
	}

	return s.Key
}

// Operator returns the punctuation between key and value, including spaces.
func (r Renderer) Operator(s Setting) string {
	switch s.Op {
	case OpAssign:
		return r.t.assign
	case OpAppend:
		return r.t.appendOp
	case OpDefault:
	}

	return r.t.statement
}

// Value renders the value of s. It panics on an unknown [ValueKind], since
// settings are always constructed by the program.
func (r Renderer) Value(s Setting) string {
	switch s.Kind {
	case KindString, KindVersion:
		return r.Quote(s.Value)

	case KindBoolean:
		b, err := strconv.ParseBool(s.Value)
		if err != nil {
			panic(fmt.Sprintf("dialect: invalid boolean %q for %s", s.Value, s.Key))
		}

		return strconv.FormatBool(b)

	case KindEnum:
		return enumConstant(s.Qualifier, s.Value)

	case KindList:
		return r.list(r.t.quote, s.Values)
	}

	panic(fmt.Sprintf("dialect: unknown value kind %v for %s", s.Kind, s.Key))
}

// ValueForms returns every spelling of the value of s that counts as already
// set, starting with the canonical one.
func (r Renderer) ValueForms(s Setting) []string {
	forms := []string{r.Value(s)}

	for _, q := range r.t.altQuotes {
		switch s.Kind {
		case KindString, KindVersion:
			forms = append(forms, quoteWith(q, s.Value))
		case KindList:
			forms = append(forms, r.list(q, s.Values))
		}
	}

	return forms
}

func (r Renderer) list(q byte, values []string) string {
	items := make([]string, 0, len(values))
	for _, v := range values {
		items = append(items, r.quoteAs(q, v))
	}

	return r.t.listOpen + strings.Join(items, ", ") + r.t.listClose
}

// Setting renders a complete setting line without indentation.
func (r Renderer) Setting(s Setting) string {
	return r.Key(s) + r.Operator(s) + r.Value(s)
}

// Entry renders a complete entry line without indentation.
func (r Renderer) Entry(e Entry) string {
	return r.entry(e, r.t.quote)
}

// EntryForms returns every spelling of e that counts as already present,
// starting with the canonical one.
func (r Renderer) EntryForms(e Entry) []string {
	forms := []string{r.Entry(e)}
	if e.Kind == EntryRaw {
		return forms
	}

	quotes := append([]byte{r.t.quote}, r.t.altQuotes...)
	for _, q := range quotes {
		if q != r.t.quote {
			forms = append(forms, r.entry(e, q))
		}

		if e.Kind == EntryCall && r.t.callOpen != "(" {
			forms = append(forms, e.Name+"("+quoteWith(q, e.Arg)+")")
		}
	}

	return forms
}

func (r Renderer) entry(e Entry, q byte) string {
	switch e.Kind {
	case EntryRaw:
		return e.Text

	case EntryCall:
		return e.Name + r.t.callOpen + r.quoteAs(q, e.Arg) + r.t.callClose

	case EntryPlugin:
		var b strings.Builder

		b.WriteString("id" + r.t.callOpen + r.quoteAs(q, e.Name) + r.t.callClose)

		if e.Version != "" {
			b.WriteString(" version " + r.quoteAs(q, e.Version))
		}

		if e.NoApply {
			b.WriteString(" apply false")
		}

		return b.String()
	}

	panic(fmt.Sprintf("dialect: unknown entry kind %d", e.Kind))
}

func (r Renderer) quoteAs(q byte, s string) string {
	if q == r.t.quote {
		return r.Quote(s)
	}

	return quoteWith(q, s)
}

func quoteWith(q byte, s string) string {
	qs := string(q)
	s = strings.NewReplacer(`\`, `\\`, qs, `\`+qs).Replace(s)

	return qs + s + qs
}

// enumConstant spells a qualified constant, e.g. ("JavaVersion", "17") as
// JavaVersion.VERSION_17 and ("JavaVersion", "1.8") as JavaVersion.VERSION_1_8.
func enumConstant(qualifier, value string) string {
	if qualifier == "" {
		qualifier = DefaultQualifier
	}

	if strings.HasPrefix(value, qualifier+".") {
		return value
	}

	name := value
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "VERSION_" + strings.ReplaceAll(name, ".", "_")
	}

	return qualifier + "." + name
}
