package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// Type identifies the installation backend for a record.
type Type string

const (
	TypeWinget   Type = "winget"
	TypeMSI      Type = "msi"
	TypeEXE      Type = "exe"
	TypePSModule Type = "psmodule"
	TypeScript   Type = "script"
	TypeGitHub   Type = "github"
)

// Record is a single catalog entry. Which fields are required depends on
// Type; Validate enforces that at load time so backends never see a
// half-populated record.
type Record struct {
	Name        string `yaml:"name" json:"name"`
	Type        Type   `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description"`

	// winget
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	// msi, exe, script
	URL  string   `yaml:"url,omitempty" json:"url,omitempty"`
	Args []string `yaml:"args,omitempty" json:"args,omitempty"`

	// psmodule
	Module string `yaml:"module,omitempty" json:"module,omitempty"`

	// github
	Repo         string `yaml:"repo,omitempty" json:"repo,omitempty"`
	AssetPattern string `yaml:"asset_pattern,omitempty" json:"asset_pattern,omitempty"`
	InstallPath  string `yaml:"install_path,omitempty" json:"install_path,omitempty"`
	PostInstall  string `yaml:"post_install,omitempty" json:"post_install,omitempty"`
}

// Validate checks that the record carries every field its Type requires.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("record has no name")
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("%s: description is required", r.Name)
	}

	switch r.Type {
	case TypeWinget:
		if r.ID == "" {
			return fmt.Errorf("%s: winget records require an id", r.Name)
		}
	case TypeMSI, TypeEXE:
		if r.URL == "" {
			return fmt.Errorf("%s: %s records require a url", r.Name, r.Type)
		}
	case TypePSModule:
		if r.Module == "" {
			return fmt.Errorf("%s: psmodule records require a module name", r.Name)
		}
	case TypeScript:
		if r.URL == "" {
			return fmt.Errorf("%s: script records require a url", r.Name)
		}
	case TypeGitHub:
		if r.Repo == "" {
			return fmt.Errorf("%s: github records require a repo", r.Name)
		}
		if !strings.Contains(r.Repo, "/") {
			return fmt.Errorf("%s: repo %q is not in owner/name form", r.Name, r.Repo)
		}
		if r.AssetPattern != "" {
			if _, err := regexp.Compile(r.AssetPattern); err != nil {
				return fmt.Errorf("%s: invalid asset_pattern: %w", r.Name, err)
			}
		}
	default:
		return fmt.Errorf("%s: unknown type %q", r.Name, r.Type)
	}
	return nil
}
