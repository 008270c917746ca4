// Package catalog holds the read-only course catalog shared by the planner
// components, together with the holidays and career paths that ship with it.
package catalog

import (
	"errors"
	"fmt"

	"github.com/rhyrak/course-planner/pkg/model"
)

var ErrUnknownCourse = errors.New("unknown course")

// Catalog is immutable after New and safe for concurrent readers.
type Catalog struct {
	courses     []*model.Course
	byID        map[string]*model.Course
	holidays    []model.Holiday
	careerPaths []model.CareerPath
}

// New builds a catalog. Course ids must be non-empty and unique.
func New(courses []*model.Course, holidays []model.Holiday, careerPaths []model.CareerPath) (*Catalog, error) {
	c := &Catalog{
		courses:     make([]*model.Course, 0, len(courses)),
		byID:        make(map[string]*model.Course, len(courses)),
		holidays:    append([]model.Holiday(nil), holidays...),
		careerPaths: append([]model.CareerPath(nil), careerPaths...),
	}
	for i, course := range courses {
		if course == nil || course.ID == "" {
			return nil, fmt.Errorf("course %d: missing id", i)
		}
		if _, dup := c.byID[course.ID]; dup {
			return nil, fmt.Errorf("course %s: duplicate id", course.ID)
		}
		c.byID[course.ID] = course
		c.courses = append(c.courses, course)
	}
	return c, nil
}

// Courses returns the catalog in load order.
func (c *Catalog) Courses() []*model.Course {
	return append([]*model.Course(nil), c.courses...)
}

func (c *Catalog) Len() int {
	return len(c.courses)
}

func (c *Catalog) Lookup(id string) (*model.Course, error) {
	course, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCourse, id)
	}
	return course, nil
}

// Resolve maps ids to courses, keeping order. The first unknown id aborts.
func (c *Catalog) Resolve(ids []string) ([]*model.Course, error) {
	courses := make([]*model.Course, 0, len(ids))
	for _, id := range ids {
		course, err := c.Lookup(id)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (c *Catalog) Holidays() []model.Holiday {
	return append([]model.Holiday(nil), c.holidays...)
}

func (c *Catalog) CareerPaths() []model.CareerPath {
	return append([]model.CareerPath(nil), c.careerPaths...)
}

// CareerPath returns the courses of the named path that exist in the catalog.
func (c *Catalog) CareerPath(name string) ([]*model.Course, bool) {
	for _, p := range c.careerPaths {
		if p.Name != name {
			continue
		}
		var courses []*model.Course
		for _, id := range p.Courses {
			if course, ok := c.byID[id]; ok {
				courses = append(courses, course)
			}
		}
		return courses, true
	}
	return nil, false
}
