package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec is a tagged sub-specification: a "tipo" tag plus numeric parameters
// stored flat next to it.
type Spec struct {
	Tipo   string             `yaml:"tipo"`
	Params map[string]float64 `yaml:",inline"`
}

func NewSpec(tipo string, params map[string]float64) *Spec {
	return &Spec{Tipo: tipo, Params: params}
}

func (s *Spec) Clone() *Spec {
	if s == nil {
		return nil
	}
	cp := &Spec{Tipo: s.Tipo}
	if s.Params != nil {
		cp.Params = make(map[string]float64, len(s.Params))
		for k, v := range s.Params {
			cp.Params[k] = v
		}
	}
	return cp
}

func (s *Spec) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(s.Params)+1)
	for k, v := range s.Params {
		flat[k] = v
	}
	flat["tipo"] = s.Tipo
	return json.Marshal(flat)
}

// UnmarshalYAML accepts numbers and numeric strings as parameter values.
// Keys whose value is not numeric are skipped.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %q", node.Line, node.Value)
	}

	spec := Spec{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if key == "tipo" {
			if err := value.Decode(&spec.Tipo); err != nil {
				return fmt.Errorf("tipo: %w", err)
			}
			continue
		}

		v, ok := scalar(value)
		if !ok {
			continue
		}
		if spec.Params == nil {
			spec.Params = make(map[string]float64)
		}
		spec.Params[key] = v
	}

	*s = spec
	return nil
}

func scalar(node *yaml.Node) (float64, bool) {
	if node.Kind != yaml.ScalarNode {
		return 0, false
	}
	var f float64
	if err := node.Decode(&f); err == nil {
		return f, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(node.Value), 64)
	return f, err == nil
}

// UnmarshalJSON accepts numbers and numeric strings as parameter values.
// Keys whose value is not numeric are skipped.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	spec := Spec{}
	for key, msg := range raw {
		if key == "tipo" {
			if err := json.Unmarshal(msg, &spec.Tipo); err != nil {
				return fmt.Errorf("tipo: %w", err)
			}
			continue
		}

		v, ok := number(msg)
		if !ok {
			continue
		}
		if spec.Params == nil {
			spec.Params = make(map[string]float64)
		}
		spec.Params[key] = v
	}

	*s = spec
	return nil
}

func number(msg json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(msg, &f); err == nil {
		return f, true
	}
	var str string
	if err := json.Unmarshal(msg, &str); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	return f, err == nil
}
