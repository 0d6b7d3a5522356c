package compare

import (
	"encoding/json"
)

// JSONFormatter formats a comparison set as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals the comparison set, failed what-ifs included
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(compSet)
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
