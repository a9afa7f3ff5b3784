// Package config resolves the tool's AWS settings from the environment and
// validates the target region against the known region table.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var regionsYAML []byte

type Config struct {
	AWS AWSConfig
}

type AWSConfig struct {
	AccessKey string
	SecretKey string
	Region    string
}

// Load reads the AWS settings from the environment. Flag values override
// these in the CLI layer.
func Load() *Config {
	return &Config{
		AWS: AWSConfig{
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Region:    os.Getenv("AWS_REGION"),
		},
	}
}

type regionTable struct {
	Regions []string `yaml:"regions"`
}

// knownRegions is the fixed set of region identifiers the tool accepts.
var knownRegions = loadRegions()

func loadRegions() []string {
	var t regionTable
	if err := yaml.Unmarshal(regionsYAML, &t); err != nil {
		// Embedded file, cannot fail in practice.
		panic("failed to unmarshal embedded regions.yaml: " + err.Error())
	}
	return t.Regions
}

// ValidateRegion checks region against the known region table. The error
// for an unknown region suggests the known regions sharing its first name
// segment, falling back to the full table when none share it.
func ValidateRegion(region string) error {
	for _, r := range knownRegions {
		if r == region {
			return nil
		}
	}

	prefix, _, _ := strings.Cut(region, "-")
	var suggestions []string
	for _, r := range knownRegions {
		if strings.HasPrefix(r, prefix+"-") {
			suggestions = append(suggestions, r)
		}
	}
	if len(suggestions) == 0 {
		suggestions = knownRegions
	}
	return fmt.Errorf("unknown region %q, did you mean one of: %s", region, strings.Join(suggestions, ", "))
}
