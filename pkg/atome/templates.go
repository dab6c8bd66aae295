package atome

import (
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/squirrel-ui/squirrel/internal/errors"
)

// Define registers a named template. Defining a name again replaces it.
func (f *Factory) Define(name string, cfg Config) {
	f.templates[name] = cfg.Clone()
}

// Template returns the template registered under name.
func (f *Factory) Template(name string) (Config, bool) {
	cfg, ok := f.templates[name]
	if !ok {
		return nil, false
	}
	return cfg.Clone(), true
}

// Templates returns the registered template names in sorted order.
func (f *Factory) Templates() []string {
	names := make([]string, 0, len(f.templates))
	for name := range f.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateFrom merges the template name with cfg and creates the result. An
// unknown template is logged and cfg is used on its own.
func (f *Factory) CreateFrom(name string, cfg Config) *Atome {
	base, ok := f.templates[name]
	if !ok {
		f.logger.Warn("template not found", "template", name)
		return f.Create(cfg.Clone())
	}
	return f.Create(Merge(base, cfg))
}

// LoadTemplates reads a YAML mapping of template names to configurations
// and defines each one. It returns the names loaded in sorted order.
//
//	card:
//	  width: 200
//	  smooth: 8
//	  css:
//	    boxShadow: 0 1px 2px black
func (f *Factory) LoadTemplates(r io.Reader) ([]string, error) {
	var doc map[string]map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.New(errors.CodeTemplateParse).Wrap(err)
	}
	names := make([]string, 0, len(doc))
	for name, cfg := range doc {
		f.Define(name, Config(cfg))
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadTemplateFile reads templates from a YAML file.
func (f *Factory) LoadTemplateFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.CodeTemplateParse).
			WithDetail("cannot open " + path).
			Wrap(err)
	}
	defer file.Close()

	names, err := f.LoadTemplates(file)
	if err != nil {
		if se, ok := err.(*errors.SquirrelError); ok {
			se.WithLocation(path, 0, 0)
		}
		return nil, err
	}
	return names, nil
}
