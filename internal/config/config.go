// Package config loads and validates selup.json, the project
// configuration describing the page elements the behaviors attach to.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Quiexx/selup-landing-demo/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "selup.json"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultStaticDir is the default static asset directory.
	DefaultStaticDir = "public"
)

// Config represents the complete selup.json configuration.
type Config struct {
	// Name is the project name, used in logs.
	Name string `json:"name,omitempty"`

	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// Static contains static file serving configuration.
	Static StaticConfig `json:"static,omitempty"`

	// Page describes the elements the behaviors attach to.
	Page PageConfig `json:"page,omitempty"`

	// Reveal tunes the reveal-on-scroll behavior.
	Reveal RevealConfig `json:"reveal,omitempty"`

	// configPath stores the path the config was loaded from.
	configPath string
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the directory served at Prefix.
	Dir string `json:"dir,omitempty"`

	// Prefix is the URL prefix for static files.
	Prefix string `json:"prefix,omitempty"`
}

// PageConfig lists the page elements by id.
type PageConfig struct {
	// Sections are the ids of the sections revealed on scroll.
	Sections []string `json:"sections,omitempty"`

	// Contact names the contact form elements. All three ids must be
	// set together; leaving them empty disables the contact behavior.
	Contact ContactConfig `json:"contact,omitempty"`
}

// ContactConfig names the contact form elements by id.
type ContactConfig struct {
	Form  string `json:"form,omitempty"`
	Input string `json:"input,omitempty"`
	Error string `json:"error,omitempty"`
}

// Enabled reports whether all three contact ids are configured.
func (c ContactConfig) Enabled() bool {
	return c.Form != "" && c.Input != "" && c.Error != ""
}

// RevealConfig tunes the reveal behavior.
type RevealConfig struct {
	// Threshold is the intersection ratio that triggers a reveal,
	// in (0, 1]. Zero means the built-in default.
	Threshold float64 `json:"threshold,omitempty"`

	// Class is the CSS class added on reveal. Empty means the
	// built-in default.
	Class string `json:"class,omitempty"`
}

// Default returns a configuration with all defaults applied and no
// page elements.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads ConfigFileName from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").WithDetailf("looked for %s", path)
		}
		return nil, errors.New("E101").Wrap(err)
	}

	c := &Config{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, errors.New("E101").Wrap(err)
	}
	c.configPath = path
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the file the config was loaded from, or empty for a
// default config.
func (c *Config) Path() string { return c.configPath }

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Static.Dir == "" {
		c.Static.Dir = DefaultStaticDir
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/"
	}
}

// Validate checks invariants the loader cannot express in the schema.
func (c *Config) Validate() error {
	if t := c.Reveal.Threshold; t < 0 || t > 1 {
		return errors.New("E102").WithDetailf("threshold is %v", t)
	}

	seen := make(map[string]struct{})
	check := func(id string) error {
		if id == "" {
			return errors.New("E105")
		}
		if _, dup := seen[id]; dup {
			return errors.New("E103").WithDetailf("id %q appears more than once", id)
		}
		seen[id] = struct{}{}
		return nil
	}

	for _, id := range c.Page.Sections {
		if err := check(id); err != nil {
			return err
		}
	}

	contact := c.Page.Contact
	if contact != (ContactConfig{}) {
		if !contact.Enabled() {
			return errors.New("E104")
		}
		for _, id := range []string{contact.Form, contact.Input, contact.Error} {
			if err := check(id); err != nil {
				return err
			}
		}
	}
	return nil
}
