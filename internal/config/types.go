package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

const (
	DefaultMarkdownDir = "markdown"
	DefaultPDFDir      = "pdf"
	DefaultHTMLDir     = "html"
	DefaultMaxPages    = 100
)

func DefaultPatterns() []string {
	return []string{"**/*.md"}
}

type Config struct {
	MarkdownDir string               `koanf:"markdown_dir"`
	PDFDir      string               `koanf:"pdf_dir"`
	HTMLDir     string               `koanf:"html_dir"`
	Frameworks  map[string]Framework `koanf:"frameworks" validate:"dive"`
	ArchiveRoot string               `koanf:"-"`
}

type Framework struct {
	Title    string   `koanf:"title"`
	Subtitle string   `koanf:"subtitle"`
	MaxPages int      `koanf:"max_pages" validate:"gte=0"`
	Patterns []string `koanf:"patterns"`
	Exclude  []string `koanf:"exclude"`
	URL      string   `koanf:"url"      validate:"omitempty,url"`
	Filename string   `koanf:"filename"`
}

// KnownFrameworks holds metadata for the frameworks the archive ships with.
// Used as defaults when a framework has no config entry.
func KnownFrameworks() map[string]Framework {
	return map[string]Framework{
		"swift":        {Title: "Swift Standard Library", Subtitle: "Complete API Reference", MaxPages: 500},
		"swiftui":      {Title: "SwiftUI Framework", Subtitle: "Declarative UI Framework for Apple Platforms", MaxPages: 300},
		"uikit":        {Title: "UIKit Framework", Subtitle: "iOS UI Framework", MaxPages: 400},
		"foundation":   {Title: "Foundation Framework", Subtitle: "Essential Data Types and Collections", MaxPages: 400},
		"coredata":     {Title: "Core Data Framework", Subtitle: "Object Graph and Persistence Framework", MaxPages: 200},
		"combine":      {Title: "Combine Framework", Subtitle: "Declarative Swift API for Processing Values Over Time", MaxPages: 150},
		"swiftdata":    {Title: "SwiftData Framework", Subtitle: "Modern Data Modeling and Management", MaxPages: 100},
		"coreml":       {Title: "Core ML Framework", Subtitle: "Machine Learning on Apple Platforms", MaxPages: 200},
		"mapkit":       {Title: "MapKit Framework", Subtitle: "Maps and Location Services", MaxPages: 150},
		"avfoundation": {Title: "AVFoundation Framework", Subtitle: "Audio and Video Processing", MaxPages: 250},
	}
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func (c *Config) ApplyDefaults() {
	if c.MarkdownDir == "" {
		c.MarkdownDir = DefaultMarkdownDir
	}

	if c.PDFDir == "" {
		c.PDFDir = DefaultPDFDir
	}

	if c.HTMLDir == "" {
		c.HTMLDir = DefaultHTMLDir
	}

	if c.Frameworks == nil {
		c.Frameworks = map[string]Framework{}
	}

	for name, fw := range c.Frameworks {
		c.Frameworks[name] = fillFramework(name, fw)
	}
}

func fillFramework(name string, fw Framework) Framework {
	known, isKnown := KnownFrameworks()[name]

	if fw.Title == "" {
		if isKnown {
			fw.Title = known.Title
		} else {
			fw.Title = capitalize(name)
		}
	}

	if fw.Subtitle == "" {
		if isKnown {
			fw.Subtitle = known.Subtitle
		} else {
			fw.Subtitle = "Documentation"
		}
	}

	if fw.MaxPages == 0 {
		if isKnown {
			fw.MaxPages = known.MaxPages
		} else {
			fw.MaxPages = DefaultMaxPages
		}
	}

	if len(fw.Patterns) == 0 {
		fw.Patterns = DefaultPatterns()
	}

	return fw
}

func capitalize(name string) string {
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

// Framework returns the effective metadata for a framework, falling back to
// built-in defaults when the config has no entry for it.
func (c *Config) Framework(name string) Framework {
	if fw, ok := c.Frameworks[name]; ok {
		return fw
	}

	return fillFramework(name, Framework{})
}

func (c *Config) Validate() error {
	v := newValidator()

	for fwName, fwCfg := range c.Frameworks {
		valErr := v.Struct(fwCfg)
		if valErr == nil {
			continue
		}

		var validationErrors validator.ValidationErrors
		if !errors.As(valErr, &validationErrors) {
			return oops.
				Code("CONFIG_INVALID").
				With("framework", fwName).
				Wrapf(valErr, "validating framework %q", fwName)
		}

		for _, fe := range validationErrors {
			return mapValidationError(fwName, fwCfg, fe)
		}
	}

	return nil
}

func mapValidationError(fwName string, fwCfg Framework, fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())

	switch {
	case fe.Tag() == "url":
		return oops.
			Code("CONFIG_INVALID").
			With("framework", fwName).
			With("field", "url").
			With("value", fwCfg.URL).
			Hint("Set url to a full http(s) URL or remove it").
			Errorf("invalid url %q for framework %q", fwCfg.URL, fwName)

	case fe.Tag() == "gte" && field == "maxpages":
		return oops.
			Code("CONFIG_INVALID").
			With("framework", fwName).
			With("field", "max_pages").
			Hint("max_pages must be zero or positive").
			Errorf("negative max_pages for framework %q", fwName)

	default:
		return oops.
			Code("CONFIG_INVALID").
			With("framework", fwName).
			With("field", field).
			With("tag", fe.Tag()).
			Errorf("validation failed for field %q in framework %q", field, fwName)
	}
}

// MarkdownRoot returns the absolute markdown directory of the archive.
func (c *Config) MarkdownRoot() string {
	return c.resolveDir(c.MarkdownDir)
}

// PDFRoot returns the absolute PDF output directory of the archive.
func (c *Config) PDFRoot() string {
	return c.resolveDir(c.PDFDir)
}

// HTMLRoot returns the absolute HTML output directory of the archive.
func (c *Config) HTMLRoot() string {
	return c.resolveDir(c.HTMLDir)
}

func (c *Config) resolveDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}

	return filepath.Join(c.ArchiveRoot, dir)
}

// FrameworkDir returns the markdown directory for one framework.
func (c *Config) FrameworkDir(name string) string {
	return filepath.Join(c.MarkdownRoot(), name)
}
