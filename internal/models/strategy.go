package models

// ParamType enumerates the value types a strategy parameter can take.
type ParamType string

const (
	ParamInt    ParamType = "int"
	ParamFloat  ParamType = "float"
	ParamBool   ParamType = "bool"
	ParamString ParamType = "str"
	ParamSelect ParamType = "select"
)

// IsNumeric reports whether the parameter type carries numeric bounds.
func (t ParamType) IsNumeric() bool {
	return t == ParamInt || t == ParamFloat
}

// ParameterSpec describes one tunable input of a strategy, as supplied by the backend.
type ParameterSpec struct {
	Name        string      `json:"name"`
	Type        ParamType   `json:"type"`
	Default     interface{} `json:"default,omitempty"`
	Min         *float64    `json:"min,omitempty"`
	Max         *float64    `json:"max,omitempty"`
	Options     []string    `json:"options,omitempty"`
	Description string      `json:"description,omitempty"`
	Required    bool        `json:"required,omitempty"`
}

// Strategy represents a trading strategy registered on the backend.
type Strategy struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Active           bool            `json:"is_active"`
	ParametersSchema []ParameterSpec `json:"parameters_schema,omitempty"`
}

// DefaultParameters builds the parameter map seeded with each schema default.
func (s *Strategy) DefaultParameters() map[string]interface{} {
	params := make(map[string]interface{}, len(s.ParametersSchema))
	for _, spec := range s.ParametersSchema {
		if spec.Default != nil {
			params[spec.Name] = spec.Default
		}
	}
	return params
}
