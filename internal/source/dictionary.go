package source

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"typeahead/internal/domain"
)

var (
	// ErrEmptyDictionary is returned when a dictionary has no entries
	ErrEmptyDictionary = errors.New("dictionary has no suggestions")
	// ErrMissingLabel is returned for an entry without a label
	ErrMissingLabel = errors.New("suggestion has no label")
)

type dictionaryFile struct {
	Suggestions domain.SuggestionList `yaml:"suggestions"`
}

// LoadDictionary reads a YAML dictionary of the form
//
//	suggestions:
//	  - value: "1"
//	    label: John
func LoadDictionary(path string) (domain.SuggestionList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	list, err := ParseDictionary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// ParseDictionary decodes a YAML dictionary. Entries without a value use
// their label as value.
func ParseDictionary(data []byte) (domain.SuggestionList, error) {
	var file dictionaryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary: %w", err)
	}
	if len(file.Suggestions) == 0 {
		return nil, ErrEmptyDictionary
	}

	list := make(domain.SuggestionList, 0, len(file.Suggestions))
	for i, s := range file.Suggestions {
		s.Label = strings.TrimSpace(s.Label)
		if s.Label == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrMissingLabel)
		}
		if s.Value == "" {
			s.Value = s.Label
		}
		list = append(list, s)
	}
	return list, nil
}

// DefaultDictionary is the built-in list of names used by the demo
func DefaultDictionary() domain.SuggestionList {
	labels := []string{
		"John", "Jack", "Anna", "Mike", "Bob", "Bella", "Jane", "Joan",
		"Julia", "Justin", "Jasper", "Alice", "Aaron", "Abby", "Adam",
		"Brian", "Carla", "Charles", "Chloe", "Daniel", "Diana", "Edward",
		"Elena", "Felix", "Fiona", "George", "Grace", "Hannah", "Henry",
		"Isaac", "Ivy", "Karen", "Kevin", "Laura", "Leo", "Maria", "Mary",
		"Nathan", "Nina", "Oliver", "Olivia", "Paul", "Petra", "Quinn",
		"Rachel", "Robert", "Sarah", "Simon", "Thomas", "Tina", "Uma",
		"Victor", "Wendy", "William", "Xavier", "Yara", "Zoe",
	}
	list := make(domain.SuggestionList, len(labels))
	for i, label := range labels {
		list[i] = domain.Suggestion{Value: fmt.Sprint(i + 1), Label: label}
	}
	return list
}
