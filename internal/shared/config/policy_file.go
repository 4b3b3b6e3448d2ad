package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// policyFile is the YAML overlay for upload limits. Absent keys keep their defaults.
//
//	file:
//	  maxByteSize: 20971520
//	  count: 5
//	  types: [application/pdf, image/png]
//	  quotaBytes: 104857600
//	  pageMaxSize: 250
//	image:
//	  maxByteSize: 5242880
type policyFile struct {
	File struct {
		MaxByteSize *int64   `yaml:"maxByteSize"`
		Count       *int     `yaml:"count"`
		Types       []string `yaml:"types"`
		QuotaBytes  *int64   `yaml:"quotaBytes"`
		PageMaxSize *int     `yaml:"pageMaxSize"`
	} `yaml:"file"`
	Image struct {
		MaxByteSize *int64 `yaml:"maxByteSize"`
	} `yaml:"image"`
}

func loadPolicyFile(path string) (policyFile, error) {
	var pf policyFile
	data, err := os.ReadFile(path)
	if err != nil {
		return pf, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return pf, fmt.Errorf("parse policy file: %w", err)
	}
	return pf, nil
}

func (pf policyFile) apply(cfg *Config) {
	if pf.File.MaxByteSize != nil {
		cfg.Files.MaxByteSize = *pf.File.MaxByteSize
	}
	if pf.File.Count != nil {
		cfg.Files.Count = *pf.File.Count
	}
	if len(pf.File.Types) > 0 {
		cfg.Files.Types = pf.File.Types
	}
	if pf.File.QuotaBytes != nil {
		cfg.Files.QuotaBytes = *pf.File.QuotaBytes
	}
	if pf.File.PageMaxSize != nil {
		cfg.Files.PageMaxSize = *pf.File.PageMaxSize
	}
	if pf.Image.MaxByteSize != nil {
		cfg.Images.MaxByteSize = *pf.Image.MaxByteSize
	}
}
