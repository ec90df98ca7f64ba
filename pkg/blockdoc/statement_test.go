package blockdoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/gradlepin/pkg/blockdoc"
)

func TestStatements(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text string
		want []string
	}{
		"lines": {
			text: "\n    a = 1\n    b = 2\n",
			want: []string{"a = 1", "b = 2"},
		},
		"semicolons": {
			text: " abortOnError = false; checkReleaseBuilds = false ",
			want: []string{"abortOnError = false", "checkReleaseBuilds = false"},
		},
		"trailing comment": {
			text: "jvmTarget = \"11\" // old\n",
			want: []string{`jvmTarget = "11"`},
		},
		"comment lines are skipped": {
			text: "// don't touch\n/* block\ncomment */ x = 1\n",
			want: []string{"x = 1"},
		},
		"multi-line call": {
			text: "excludes += setOf(\n    \"a\",\n    \"b\"\n)\nnext = 1",
			want: []string{"excludes += setOf(\n    \"a\",\n    \"b\"\n)", "next = 1"},
		},
		"quoted separators": {
			text: "a = \"x; y\"\nb = 'it\\'s'\n",
			want: []string{`a = "x; y"`, `b = 'it\'s'`},
		},
		"anonymous braces": {
			text: "foo.forEach {\n    bar = 1\n}\nbaz = 2",
			want: []string{"foo.forEach {\n    bar = 1\n}", "baz = 2"},
		},
		"crlf": {
			text: "a = 1\r\nb = 2\r\n",
			want: []string{"a = 1", "b = 2"},
		},
		"empty": {
			text: "\n   \n",
			want: []string{},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := []string{}
			for _, st := range blockdoc.Statements(tc.text) {
				got = append(got, tc.text[st.Start:st.End])
			}

			assert.Equal(t, tc.want, got)
		})
	}
}
