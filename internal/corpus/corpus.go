// Package corpus loads the knowledge base text from disk.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound  = errors.New("corpus not found")
	ErrMalformed = errors.New("malformed structured corpus")
	ErrEmpty     = errors.New("corpus is empty")
)

// Corpus is the flattened knowledge base text and the files it came from.
type Corpus struct {
	Text  string
	Files []string
}

var supported = map[string]bool{
	".txt":  true,
	".md":   true,
	".json": true,
	".yaml": true,
	".yml":  true,
}

// Load reads a corpus file, or every supported file of a directory in name
// order. Structured files are flattened to text before being returned.
func Load(path string) (Corpus, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Corpus{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Corpus{}, fmt.Errorf("stat corpus: %w", err)
	}
	files := []string{path}
	if info.IsDir() {
		files, err = listDir(path)
		if err != nil {
			return Corpus{}, err
		}
	}
	var parts []string
	for _, f := range files {
		text, err := loadFile(f)
		if err != nil {
			return Corpus{}, err
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return Corpus{}, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return Corpus{Text: strings.Join(parts, "\n\n"), Files: files}, nil
}

func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !supported[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func loadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read corpus file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		text, err := Flatten(data)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		return text, nil
	default:
		return string(data), nil
	}
}

// maxFlattenNodes bounds the nodes visited while expanding aliases.
const maxFlattenNodes = 1 << 20

// Flatten parses JSON or YAML and renders every scalar as a line
// "<key path>: <value>", in document order, separated by blank lines.
// Recursive aliases and alias expansion past maxFlattenNodes are malformed.
func Flatten(data []byte) (string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	w := &walker{active: map[*yaml.Node]bool{}}
	if err := w.walk(&root, nil); err != nil {
		return "", err
	}
	return strings.Join(w.lines, "\n\n"), nil
}

type walker struct {
	lines  []string
	active map[*yaml.Node]bool // alias targets on the current path
	nodes  int
}

func (w *walker) walk(n *yaml.Node, path []string) error {
	if w.nodes++; w.nodes > maxFlattenNodes {
		return fmt.Errorf("%w: alias expansion exceeds %d nodes", ErrMalformed, maxFlattenNodes)
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			if err := w.walk(c, path); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := strings.TrimSpace(n.Content[i].Value)
			if err := w.walk(n.Content[i+1], appendKey(path, key)); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil
		}
		if w.active[n.Alias] {
			return fmt.Errorf("%w: recursive alias *%s at line %d", ErrMalformed, n.Value, n.Line)
		}
		w.active[n.Alias] = true
		err := w.walk(n.Alias, path)
		delete(w.active, n.Alias)
		return err
	case yaml.ScalarNode:
		value := strings.TrimSpace(n.Value)
		if value == "" {
			return nil
		}
		if len(path) == 0 {
			w.lines = append(w.lines, value)
			return nil
		}
		w.lines = append(w.lines, strings.Join(path, " ")+": "+value)
	}
	return nil
}

func appendKey(path []string, key string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	return append(out, key)
}
