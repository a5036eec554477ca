package schema

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/owl2step/vocabulary/owllist"
)

// fileAttribute is the YAML form of one attribute declaration. Attribute
// order within a class is the declaration order in the document.
type fileAttribute struct {
	Name        string `yaml:"name"`
	Range       string `yaml:"range"`
	Set         bool   `yaml:"set"`
	ListOrArray bool   `yaml:"list_or_array"`
	Optional    bool   `yaml:"optional"`
}

// fileClass is the YAML form of one entity class declaration.
type fileClass struct {
	Attributes []fileAttribute `yaml:"attributes"`
	Derived    []string        `yaml:"derived"`
}

// schemaFile is the on-disk fact-base document for one ontology version.
// The classification sets are precomputed when the document is generated
// from the ontology, so loading performs no graph traversal.
type schemaFile struct {
	Version      string               `yaml:"version"`
	Enumerations []string             `yaml:"enumerations"`
	Members      []string             `yaml:"members"`
	Lists        []string             `yaml:"lists"`
	Selects      []string             `yaml:"selects"`
	Classes      map[string]fileClass `yaml:"classes"`
}

// Load reads a fact-base document and builds the immutable Schema for it.
func Load(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}

	var doc schemaFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema document: %w", err)
	}
	return build(doc)
}

// LoadFile reads a fact-base document from the file system.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema document: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadVersion loads the fact-base document for a version from a schema
// directory tree, named "<label>.yaml".
func LoadVersion(fsys fs.FS, v Version) (*Schema, error) {
	name := v.Label() + ".yaml"
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open schema document %s: %w", name, err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if s.version != v {
		return nil, fmt.Errorf("schema document %s declares version %s", name, s.version)
	}
	return s, nil
}

// LoadVersionDir is LoadVersion over an on-disk directory.
func LoadVersionDir(dir string, v Version) (*Schema, error) {
	return LoadVersion(os.DirFS(filepath.Clean(dir)), v)
}

func build(doc schemaFile) (*Schema, error) {
	v := Version(doc.Version)
	if !v.Valid() {
		return nil, fmt.Errorf("unsupported schema version %q: %w", doc.Version, ErrVersionMismatch)
	}

	s := &Schema{
		version:  v,
		classes:  make(map[string][]Attribute, len(doc.Classes)),
		slots:    make(map[string]attrSlot),
		derived:  make(map[string]map[string]bool),
		entities: make(map[string]bool, len(doc.Classes)),
		enums:    make(map[string]bool, len(doc.Enumerations)),
		members:  make(map[string]bool, len(doc.Members)),
		lists:    make(map[string]bool, len(doc.Lists)+1),
		selects:  make(map[string]bool, len(doc.Selects)),
	}

	for _, name := range doc.Enumerations {
		s.enums[name] = true
	}
	for _, name := range doc.Members {
		s.members[name] = true
	}
	s.lists[owllist.OWLList] = true
	for _, name := range doc.Lists {
		s.lists[name] = true
	}
	for _, name := range doc.Selects {
		s.selects[name] = true
	}

	for class, decl := range doc.Classes {
		s.entities[class] = true

		attrs := make([]Attribute, 0, len(decl.Attributes))
		for i, fa := range decl.Attributes {
			if fa.Name == "" {
				return nil, fmt.Errorf("class %s: attribute %d has no name", class, i)
			}
			attr := Attribute{
				Name:        fa.Name,
				Range:       fa.Range,
				Set:         fa.Set,
				ListOrArray: fa.ListOrArray,
				Optional:    fa.Optional,
			}
			attrs = append(attrs, attr)

			// Inherited attributes recur in every subclass's order. With
			// single inheritance they always occupy the same position, so
			// one global slot per predicate name is enough.
			if prev, dup := s.slots[fa.Name]; dup {
				if prev.pos != i {
					return nil, fmt.Errorf("attribute %s: position %d in %s but %d in %s",
						fa.Name, prev.pos, prev.class, i, class)
				}
				continue
			}
			s.slots[fa.Name] = attrSlot{class: class, pos: i, attr: attr}
		}
		s.classes[class] = attrs

		if len(decl.Derived) > 0 {
			set := make(map[string]bool, len(decl.Derived))
			for _, name := range decl.Derived {
				set[name] = true
			}
			s.derived[class] = set
		}
	}

	return s, nil
}
