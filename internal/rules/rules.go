// Package rules implements the cheap matchers that run before retrieval:
// greeting detection, the predefined-answer table and the direct-answer
// extractor. Every matcher keeps its entries in declaration order and the
// first match wins.
package rules

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Greeting detects salutations anywhere in a query.
type Greeting struct {
	phrases []string
}

// NewGreeting builds a detector over lower-cased phrases.
func NewGreeting(phrases []string) *Greeting {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p = normalize(p); p != "" {
			out = append(out, p)
		}
	}
	return &Greeting{phrases: out}
}

// Match reports whether the case-folded query contains any greeting phrase
// as a substring, so "hi there" and "hellooo" both match.
func (g *Greeting) Match(query string) bool {
	q := normalize(query)
	for _, p := range g.phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

// Entry maps a trigger phrase to a literal answer.
type Entry struct {
	Trigger string `yaml:"trigger"`
	Answer  string `yaml:"answer"`
}

// Table is the ordered predefined-answer list.
type Table struct {
	entries []Entry
}

func NewTable(entries []Entry) *Table {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Trigger = normalize(e.Trigger)
		if e.Trigger == "" {
			continue
		}
		out = append(out, e)
	}
	return &Table{entries: out}
}

// Lookup returns the answer of the first entry whose trigger is a substring
// of the case-folded query.
func (t *Table) Lookup(query string) (string, bool) {
	q := normalize(query)
	for _, e := range t.entries {
		if strings.Contains(q, e.Trigger) {
			return e.Answer, true
		}
	}
	return "", false
}

// Rule fires when every one of its triggers occurs in the query.
type Rule struct {
	All    []string `yaml:"all"`
	Answer string   `yaml:"answer"`
}

// Extractor is the ordered direct-answer rule list.
type Extractor struct {
	rules []Rule
}

func NewExtractor(rules []Rule) *Extractor {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		triggers := make([]string, 0, len(r.All))
		for _, tr := range r.All {
			if tr = normalize(tr); tr != "" {
				triggers = append(triggers, tr)
			}
		}
		if len(triggers) == 0 {
			continue
		}
		out = append(out, Rule{All: triggers, Answer: r.Answer})
	}
	return &Extractor{rules: out}
}

// Extract returns the answer of the first rule whose triggers are all
// substrings of the case-folded query.
func (x *Extractor) Extract(query string) (string, bool) {
	q := normalize(query)
	for _, r := range x.rules {
		if matchesAll(q, r.All) {
			return r.Answer, true
		}
	}
	return "", false
}

func matchesAll(q string, triggers []string) bool {
	for _, tr := range triggers {
		if !strings.Contains(q, tr) {
			return false
		}
	}
	return true
}

// Set bundles the three matchers.
type Set struct {
	Greeting  *Greeting
	Table     *Table
	Extractor *Extractor
}

// Default returns the built-in rule set.
func Default() *Set {
	return &Set{
		Greeting:  NewGreeting(DefaultGreetings),
		Table:     NewTable(DefaultTable),
		Extractor: NewExtractor(DefaultRules),
	}
}

type fileFormat struct {
	Greetings []string `yaml:"greetings"`
	Answers   []Entry  `yaml:"answers"`
	Rules     []Rule   `yaml:"rules"`
}

// LoadFile reads a YAML rule file. Each section present in the file replaces
// the corresponding built-in list; absent sections keep the defaults.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode rules file: %w", err)
	}
	set := Default()
	if f.Greetings != nil {
		set.Greeting = NewGreeting(f.Greetings)
	}
	if f.Answers != nil {
		for i, e := range f.Answers {
			if strings.TrimSpace(e.Answer) == "" {
				return nil, fmt.Errorf("answers[%d]: %w", i, errEmptyAnswer)
			}
		}
		set.Table = NewTable(f.Answers)
	}
	if f.Rules != nil {
		for i, r := range f.Rules {
			if strings.TrimSpace(r.Answer) == "" {
				return nil, fmt.Errorf("rules[%d]: %w", i, errEmptyAnswer)
			}
		}
		set.Extractor = NewExtractor(f.Rules)
	}
	return set, nil
}

var errEmptyAnswer = errors.New("answer must not be empty")

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
