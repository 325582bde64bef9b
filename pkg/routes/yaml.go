package routes

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// FromYAML builds a Table from YAML, starting from DefaultTable so that
// omitted keys keep their defaults and present keys replace them wholesale.
func FromYAML(data []byte) (Table, error) {
	t := DefaultTable()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, errors.Join(ErrInvalidTable, err)
	}
	return t, nil
}

// LoadTable reads a route table from a YAML file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	return FromYAML(data)
}
