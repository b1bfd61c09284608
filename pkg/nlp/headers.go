package nlp

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed headers.yaml
var defaultHeadersYAML []byte

// HeaderConfig holds the two header vocabularies: one for resumes, one for JDs.
type HeaderConfig struct {
	Resume HeaderMapping `yaml:"resume"`
	JD     HeaderMapping `yaml:"jd"`
}

// ResumeSegmenter builds the resume segmenter (50-char header limit).
func (c HeaderConfig) ResumeSegmenter() *Segmenter {
	return NewSegmenter(c.Resume, ResumeMaxHeaderLen)
}

// JDSegmenter builds the JD segmenter (80-char header limit).
func (c HeaderConfig) JDSegmenter() *Segmenter {
	return NewSegmenter(c.JD, JDMaxHeaderLen)
}

// DefaultHeaderConfig returns the built-in synonyms.
func DefaultHeaderConfig() HeaderConfig {
	cfg, err := LoadHeaderConfig(bytes.NewReader(defaultHeadersYAML))
	if err != nil {
		panic(fmt.Sprintf("nlp: embedded headers.yaml is invalid: %v", err))
	}
	return cfg
}

// LoadHeaderConfig decodes a YAML header configuration.
func LoadHeaderConfig(r io.Reader) (HeaderConfig, error) {
	var cfg HeaderConfig
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return HeaderConfig{}, fmt.Errorf("decode header config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return HeaderConfig{}, err
	}
	return cfg, nil
}

// LoadHeaderConfigFile reads path, or returns the defaults when path is empty.
func LoadHeaderConfigFile(path string) (HeaderConfig, error) {
	if path == "" {
		return DefaultHeaderConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return HeaderConfig{}, fmt.Errorf("open header config: %w", err)
	}
	defer f.Close()
	return LoadHeaderConfig(f)
}

func (c HeaderConfig) validate() error {
	if len(c.Resume) == 0 {
		return errors.New("header config: resume mapping is empty")
	}
	if len(c.JD) == 0 {
		return errors.New("header config: jd mapping is empty")
	}
	for _, m := range []HeaderMapping{c.Resume, c.JD} {
		for _, h := range m {
			if h.Section == "" {
				return errors.New("header config: section name is required")
			}
			if h.Section == Uncategorized {
				return fmt.Errorf("header config: %q is reserved", Uncategorized)
			}
		}
	}
	return nil
}
