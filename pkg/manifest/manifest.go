// Package manifest makes the Flutter Android manifest launchable on current
// Android versions. Edits are textual so the rest of the file keeps its exact
// formatting.
package manifest

import (
	"errors"
	"strings"
)

// File is the manifest path relative to the Android project root.
const File = "app/src/main/AndroidManifest.xml"

const (
	exportedAttr  = `android:exported`
	embeddingName = `android:name="flutterEmbedding"`
	embeddingTag  = `<meta-data android:name="flutterEmbedding" android:value="2" />`
)

var ErrNoApplication = errors.New("manifest has no </application> element")

// Patch marks the first activity as exported and declares the v2 Flutter
// embedding. It reports whether text changed.
func Patch(text string) (string, bool, error) {
	out := exportFirstActivity(text)

	if !strings.Contains(out, embeddingName) {
		var ok bool

		out, ok = insertEmbedding(out)
		if !ok {
			return text, false, ErrNoApplication
		}
	}

	return out, out != text, nil
}

func exportFirstActivity(text string) string {
	start := activityStart(text)
	if start < 0 {
		return text
	}

	end := tagEnd(text, start)
	if end < 0 {
		return text
	}

	tag := text[start:end]

	i := strings.Index(tag, exportedAttr)
	if i < 0 {
		at := start + len("<activity")

		return text[:at] + ` android:exported="true"` + text[at:]
	}

	// Normalize an existing value.
	rest := tag[i+len(exportedAttr):]
	j := strings.IndexAny(rest, `"'`)
	if j < 0 {
		return text
	}

	q := rest[j]
	k := strings.IndexByte(rest[j+1:], q)
	if k < 0 {
		return text
	}

	vs := start + i + len(exportedAttr) + j + 1
	ve := vs + k

	return text[:vs] + "true" + text[ve:]
}

func activityStart(text string) int {
	from := 0
	for {
		i := strings.Index(text[from:], "<activity")
		if i < 0 {
			return -1
		}

		i += from
		next := i + len("<activity")

		if next < len(text) && strings.ContainsRune(" \t\r\n>/", rune(text[next])) {
			return i
		}

		from = next
	}
}

// tagEnd returns the index just past the '>' closing the tag at start,
// skipping quoted attribute values.
func tagEnd(text string, start int) int {
	var quote byte

	for i := start; i < len(text); i++ {
		c := text[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}

	return -1
}

func insertEmbedding(text string) (string, bool) {
	i := strings.LastIndex(text, "</application>")
	if i < 0 {
		return text, false
	}

	lineStart := strings.LastIndexByte(text[:i], '\n') + 1
	indent := text[lineStart:i]

	if strings.TrimSpace(indent) != "" {
		// </application> shares its line with other content.
		return text[:i] + embeddingTag + text[i:], true
	}

	line := indent + childIndent(indent) + embeddingTag + "\n"

	return text[:lineStart] + line + text[lineStart:], true
}

func childIndent(indent string) string {
	if strings.Contains(indent, "\t") {
		return "\t"
	}

	if indent == "" {
		return "    "
	}

	return indent
}
