// Package vocab defines the closed set of verbs the classifier may emit and
// answers which class a tagged command belongs to.
package vocab

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/vox/pkg/models"
)

//go:embed verbs.yaml
var defaultVerbs []byte

// Class groups verbs by the path that handles them.
type Class string

const (
	ClassControl    Class = "control"
	ClassAutomation Class = "automation"
	ClassAuxiliary  Class = "auxiliary"
	ClassHealth     Class = "health"
	ClassEnhanced   Class = "enhanced"
	ClassUnknown    Class = ""
)

// File is the on-disk shape of a vocabulary.
type File struct {
	Control    []string `yaml:"control"`
	Automation []string `yaml:"automation"`
	Auxiliary  []string `yaml:"auxiliary"`
	Health     []string `yaml:"health"`
	Enhanced   []string `yaml:"enhanced"`
}

// Vocabulary is an immutable verb whitelist. Safe for concurrent use.
type Vocabulary struct {
	// verbs is sorted longest first so Match returns the most specific verb.
	verbs   []string
	classes map[string]Class
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	v, err := Parse(defaultVerbs)
	if err != nil {
		panic(fmt.Sprintf("vocab: embedded verbs.yaml is invalid: %v", err))
	}
	return v
}

// Load reads a vocabulary from a YAML file.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return Parse(data)
}

// Parse builds a vocabulary from YAML. Every built-in control verb is
// always present.
func Parse(data []byte) (*Vocabulary, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}

	v := &Vocabulary{classes: make(map[string]Class)}
	add := func(class Class, verbs []string) error {
		for _, verb := range verbs {
			if verb == "" {
				return fmt.Errorf("empty verb in %s list", class)
			}
			if prev, ok := v.classes[verb]; ok && prev != class {
				return fmt.Errorf("verb %q listed as both %s and %s", verb, prev, class)
			}
			v.classes[verb] = class
		}
		return nil
	}

	control := append([]string{models.VerbExit, models.VerbTerminate, models.VerbGeneral, models.VerbRealtime}, f.Control...)
	for _, step := range []struct {
		class Class
		verbs []string
	}{
		{ClassControl, control},
		{ClassAutomation, f.Automation},
		{ClassAuxiliary, f.Auxiliary},
		{ClassHealth, f.Health},
		{ClassEnhanced, f.Enhanced},
	} {
		if err := add(step.class, step.verbs); err != nil {
			return nil, err
		}
	}

	for verb := range v.classes {
		v.verbs = append(v.verbs, verb)
	}
	sort.Slice(v.verbs, func(i, j int) bool {
		if len(v.verbs[i]) != len(v.verbs[j]) {
			return len(v.verbs[i]) > len(v.verbs[j])
		}
		return v.verbs[i] < v.verbs[j]
	})

	return v, nil
}

// Match returns the longest whitelisted verb that prefixes cmd.
func (v *Vocabulary) Match(cmd models.TaggedCommand) (string, bool) {
	for _, verb := range v.verbs {
		if cmd.HasVerb(verb) {
			return verb, true
		}
	}
	return "", false
}

// Allowed reports whether cmd starts with any whitelisted verb.
func (v *Vocabulary) Allowed(cmd models.TaggedCommand) bool {
	_, ok := v.Match(cmd)
	return ok
}

// Classify returns the class of the verb cmd starts with.
func (v *Vocabulary) Classify(cmd models.TaggedCommand) Class {
	verb, ok := v.Match(cmd)
	if !ok {
		return ClassUnknown
	}
	return v.classes[verb]
}

// Is reports whether cmd belongs to class. Unlike Classify it considers every
// matching verb, so "close tab" counts as automation through "close".
func (v *Vocabulary) Is(cmd models.TaggedCommand, class Class) bool {
	for _, verb := range v.verbs {
		if v.classes[verb] == class && cmd.HasVerb(verb) {
			return true
		}
	}
	return false
}

// AnyIs reports whether some command of d belongs to class.
func (v *Vocabulary) AnyIs(d models.Decision, class Class) bool {
	for _, cmd := range d {
		if v.Is(cmd, class) {
			return true
		}
	}
	return false
}

// Verbs returns the verbs of class in their sorted order.
func (v *Vocabulary) Verbs(class Class) []string {
	var out []string
	for _, verb := range v.verbs {
		if v.classes[verb] == class {
			out = append(out, verb)
		}
	}
	return out
}

// Len returns the number of whitelisted verbs.
func (v *Vocabulary) Len() int {
	return len(v.verbs)
}
