package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rhyrak/course-planner/pkg/model"
)

type document struct {
	Courses     []*model.Course    `yaml:"courses"`
	Holidays    []model.Holiday    `yaml:"holidays"`
	CareerPaths []model.CareerPath `yaml:"careerPaths"`
}

// LoadYAML reads a catalog file.
func LoadYAML(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func ParseYAML(r io.Reader) (*Catalog, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Courses, doc.Holidays, doc.CareerPaths)
}
