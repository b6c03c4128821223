package evaluation

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// suiteFile is the on-disk layout of a test case suite.
type suiteFile struct {
	Cases []TestCase `yaml:"cases"`
}

// LoadSuite reads a YAML test case suite from path.
//
// Expected layout:
//
//	cases:
//	  - title: Medicare billing scheme
//	    category: healthcare
//	    expected_fraud_flag: true
func LoadSuite(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("evaluation: failed to read suite file: %w", err)
	}

	var suite suiteFile
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("evaluation: failed to parse suite file %s: %w", path, err)
	}
	if len(suite.Cases) == 0 {
		return nil, fmt.Errorf("evaluation: suite file %s contains no cases", path)
	}

	for i, c := range suite.Cases {
		if c.Title == "" {
			return nil, fmt.Errorf("evaluation: suite file %s: case %d has no title", path, i+1)
		}
	}

	return suite.Cases, nil
}

// LoadResult reads an evaluation result JSON file from path.
func LoadResult(path string) (*EvaluationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("evaluation: failed to read result file: %w", err)
	}

	var result EvaluationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("evaluation: failed to parse result file %s: %w", path, err)
	}

	return &result, nil
}
