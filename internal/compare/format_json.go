package compare

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter formats comparison results as indented JSON.
type JSONFormatter struct{}

// Format generates JSON output for comparison results.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	data, err := json.MarshalIndent(compSet, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}
	return string(data), nil
}
