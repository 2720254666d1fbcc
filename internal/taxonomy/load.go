package taxonomy

import (
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML layout of a taxonomy override
type File struct {
	Categories []Category        `yaml:"categories"`
	Aliases    map[string]string `yaml:"aliases"`
	// Extend merges the file into the built-in taxonomy instead of replacing it
	Extend bool `yaml:"extend"`
}

// LoadFile reads a YAML taxonomy. With extend: true, categories are appended to
// (or merged into) the built-in ones and aliases override built-in entries.
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: "failed to read taxonomy file", Path: path, Cause: err}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &Error{Message: "failed to parse taxonomy YAML", Path: path, Cause: err}
	}
	if len(f.Categories) == 0 && !f.Extend {
		return nil, &Error{Message: "taxonomy file defines no categories", Path: path}
	}

	categories, aliases := f.Categories, f.Aliases
	if f.Extend {
		categories, aliases = merge(defaultCategories, defaultAliases, f.Categories, f.Aliases)
	}

	t, err := New(categories, aliases)
	if err != nil {
		if te, ok := err.(*Error); ok {
			te.Path = path
		}
		return nil, err
	}
	return t, nil
}

func merge(baseCats []Category, baseAliases map[string]string, cats []Category, aliases map[string]string) ([]Category, map[string]string) {
	out := make([]Category, 0, len(baseCats)+len(cats))
	index := make(map[string]int, len(baseCats))
	for _, c := range baseCats {
		index[c.Name] = len(out)
		out = append(out, Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)})
	}
	for _, c := range cats {
		if i, ok := index[clean(c.Name)]; ok {
			out[i].Skills = append(out[i].Skills, c.Skills...)
			continue
		}
		index[clean(c.Name)] = len(out)
		out = append(out, c)
	}

	merged := make(map[string]string, len(baseAliases)+len(aliases))
	for k, v := range baseAliases {
		merged[k] = v
	}
	for k, v := range aliases {
		merged[k] = v
	}
	return out, merged
}
