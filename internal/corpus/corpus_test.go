package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_PlainText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "kb.txt", "The library opens at 8.")
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "The library opens at 8.", c.Text)
	assert.Equal(t, []string{path}, c.Files)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "kb.txt", "  \n\n ")
	_, err := Load(path)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestLoad_JSONFlattened(t *testing.T) {
	path := writeFile(t, t.TempDir(), "kb.json", `{
  "hostel": {"fee": "60000 per year", "warden_email": "warden@college.edu"},
  "library": {"hours": ["8am-8pm weekdays", "9am-1pm saturday"]},
  "founded": 1987,
  "empty": ""
}`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t,
		"hostel fee: 60000 per year\n\n"+
			"hostel warden email: warden@college.edu\n\n"+
			"library hours: 8am-8pm weekdays\n\n"+
			"library hours: 9am-1pm saturday\n\n"+
			"founded: 1987",
		c.Text)
}

func TestLoad_MalformedStructured(t *testing.T) {
	path := writeFile(t, t.TempDir(), "kb.json", `{"hostel": [unclosed`)
	_, err := Load(path)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "Second file.")
	writeFile(t, dir, "a.yaml", "canteen:\n  hours: 8 to 6\n")
	writeFile(t, dir, "ignored.bin", "binary")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "canteen hours: 8 to 6\n\nSecond file.", c.Text)
	assert.Len(t, c.Files, 2)
}

func TestFlatten_TopLevelScalarsAndSequences(t *testing.T) {
	got, err := Flatten([]byte(`["first fact", "second fact"]`))
	require.NoError(t, err)
	assert.Equal(t, "first fact\n\nsecond fact", got)
}

func TestFlatten_SharedAliasExpandsEachUse(t *testing.T) {
	got, err := Flatten([]byte("base: &b\n  fee: 100\ncopy: *b\n"))
	require.NoError(t, err)
	assert.Equal(t, "base fee: 100\n\ncopy fee: 100", got)
}

func TestFlatten_RecursiveAliasIsMalformed(t *testing.T) {
	for _, doc := range []string{
		"a: &x\n  - b\n  - *x\n",
		"a: &x\n  child:\n    again: *x\n",
	} {
		_, err := Flatten([]byte(doc))
		require.ErrorIs(t, err, ErrMalformed, doc)
	}
}

func TestFlatten_AliasExpansionBudget(t *testing.T) {
	var b strings.Builder
	b.WriteString("l0: &l0 [lol, lol, lol, lol, lol, lol, lol, lol, lol, lol]\n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [", i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}
	_, err := Flatten([]byte(b.String()))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestLoad_RecursiveAliasDegrades(t *testing.T) {
	path := writeFile(t, t.TempDir(), "kb.yaml", "a: &x\n  - b\n  - *x\n")
	_, err := Load(path)
	require.ErrorIs(t, err, ErrMalformed)
}
