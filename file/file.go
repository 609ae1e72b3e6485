package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/chordbloom/model"
	"gopkg.in/yaml.v3"
)

// Parse accepts a progression as JSON or YAML.
func Parse(data []byte) (model.Progression, error) {
	var p model.Progression
	if errJSON := json.Unmarshal(data, &p); errJSON != nil {
		p = model.Progression{}
		if errYaml := yaml.Unmarshal(data, &p); errYaml != nil {
			return model.Progression{}, fmt.Errorf("the progression could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	if err := p.Validate(); err != nil {
		return model.Progression{}, err
	}
	return p, nil
}

func Read(path string) (model.Progression, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Progression{}, fmt.Errorf("could not read file %v: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return model.Progression{}, fmt.Errorf("%v: %w", path, err)
	}
	return p, nil
}

// Encode writes JSON when ext is ".json" and YAML otherwise.
func Encode(p model.Progression, ext string) ([]byte, error) {
	if strings.EqualFold(ext, ".json") {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return yaml.Marshal(p)
}

// Write encodes p by the extension of path, creating the directory if needed.
func Write(path string, p model.Progression) error {
	data, err := Encode(p, filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("could not encode progression: %w", err)
	}
	if err := WriteBytes(path, data); err != nil {
		return err
	}
	return nil
}

func WriteBytes(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create output directory %v: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write file %v: %w", path, err)
	}
	return nil
}

// NewName is a fresh file name such as progression-<uuid>.mid.
func NewName(ext string) string {
	return "progression-" + uuid.New().String() + ext
}
