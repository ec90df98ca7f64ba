package blockdoc

// Words that may precede a brace at a statement start without naming a block.
var keywords = map[string]bool{
	"else":    true,
	"try":     true,
	"finally": true,
	"do":      true,
	"init":    true,
	"return":  true,
}

type parser struct {
	src string
	pos int
}

// Parse splits text into runs and named blocks. A named block opens with an
// identifier at the start of a statement followed by optional horizontal
// whitespace and `{`; every other brace is counted for balance but stays
// inside an opaque run, along with everything it encloses.
//
// Braces inside string literals and comments are not treated specially. If
// the braces do not balance, the returned document is degraded: a single run
// holding the whole text.
func Parse(text string) *Document {
	p := &parser{src: text}

	segs, ok := p.body("", true)
	if !ok {
		return &Document{
			Segments: []Segment{&Run{Text: text}},
			degraded: true,
		}
	}

	return &Document{Segments: segs}
}

// ParseBody parses text as the body of the block at parent. The second
// result is false if the braces in text do not balance.
func ParseBody(text, parent string) ([]Segment, bool) {
	p := &parser{src: text}

	return p.body(parent, true)
}

// body consumes segments up to the brace closing the current block, which is
// left unconsumed, or up to the end of input for the root.
func (p *parser) body(parent string, root bool) ([]Segment, bool) {
	var segs []Segment

	start := p.pos
	anon := 0

	flush := func(end int) {
		if end > start {
			segs = append(segs, &Run{Text: p.src[start:end]})
		}
	}

	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			if anon > 0 {
				anon++

				break
			}

			openAt, name, ok := p.opener(start)
			if !ok {
				anon++

				break
			}

			flush(openAt)

			blk := &Block{
				Name:   name,
				Path:   joinPath(parent, name),
				Open:   p.src[openAt : p.pos+1],
				Close:  "}",
				Indent: lineIndent(p.src, openAt),
			}

			p.pos++

			inner, ok := p.body(blk.Path, false)
			if !ok {
				return nil, false
			}

			blk.Body = inner
			segs = append(segs, blk)

			p.pos++ // Closing brace.
			start = p.pos

			continue

		case '}':
			if anon > 0 {
				anon--

				break
			}

			if root {
				return nil, false
			}

			flush(p.pos)

			return segs, true
		}

		p.pos++
	}

	if !root || anon != 0 {
		return nil, false
	}

	flush(p.pos)

	return segs, true
}

// opener checks whether the brace at p.pos opens a named block. It returns
// the offset where the block's identifier begins. The identifier must lie
// within the current run, which starts at from.
func (p *parser) opener(from int) (int, string, bool) {
	i := p.pos - 1
	for i >= from && isHorizontalSpace(p.src[i]) {
		i--
	}

	end := i + 1
	for i >= from && isIdentChar(p.src[i]) {
		i--
	}

	begin := i + 1
	if begin == end || !isIdentStart(p.src[begin]) {
		return 0, "", false
	}

	name := p.src[begin:end]
	if keywords[name] {
		return 0, "", false
	}

	for i >= 0 && isHorizontalSpace(p.src[i]) {
		i--
	}

	if i >= 0 {
		switch p.src[i] {
		case '\n', '\r', '{', '}', ';':
		default:
			return 0, "", false
		}
	}

	return begin, name, true
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "." + name
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(src string, offset int) string {
	lineStart := offset
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}

	end := lineStart
	for end < offset && isHorizontalSpace(src[end]) {
		end++
	}

	return src[lineStart:end]
}

func isHorizontalSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
