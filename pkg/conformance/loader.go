package conformance

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML corpus file. Supports multiple test
// documents separated by "---", matching the multi-document convention
// used throughout this module's test fixtures.
func Load(filename string) ([]Case, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cases []Case
	docNum := 0
	for {
		var c Case
		if err := decoder.Decode(&c); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("parsing corpus document %d: %w", docNum+1, err)
		}
		docNum++
		if err := validate(&c); err != nil {
			return nil, fmt.Errorf("case %d (%q): %w", docNum, c.Name, err)
		}
		cases = append(cases, c)
	}

	if len(cases) == 0 {
		return nil, fmt.Errorf("no corpus documents found in %s", filename)
	}
	return cases, nil
}

func validate(c *Case) error {
	if c.Name == "" {
		return fmt.Errorf("case name is required")
	}
	if c.Expr == "" {
		return fmt.Errorf("expr is required")
	}
	if c.WantErr && (c.WantTree != nil || c.WantUsedPrefixes != nil) {
		return fmt.Errorf("want_err cannot be combined with want_tree or want_used_prefixes")
	}
	return nil
}
