// Package catalog holds the ordered list of draw jurisdictions and their display data.
package catalog

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DisplayTimezone is the zone every draw time and result date is rendered in
const DisplayTimezone = "America/New_York"

// DrawTimeLayout is the layout of Jurisdiction.DrawTime
const DrawTimeLayout = "3:04:05 PM"

// Jurisdiction is one draw location
type Jurisdiction struct {
	Slug        string `yaml:"slug" json:"slug"`
	DisplayName string `yaml:"display_name,omitempty" json:"display_name,omitempty"`
	DrawTime    string `yaml:"draw_time,omitempty" json:"draw_time,omitempty"`
}

// Catalog is the ordered jurisdiction list. It is passed explicitly to the
// components that need it and never mutated after construction.
type Catalog struct {
	jurisdictions []Jurisdiction
	index         map[string]int
	location      *time.Location
}

type catalogFile struct {
	Jurisdictions []Jurisdiction `yaml:"jurisdictions"`
}

// New builds a catalog from an ordered jurisdiction list
func New(jurisdictions []Jurisdiction) (*Catalog, error) {
	if len(jurisdictions) == 0 {
		return nil, fmt.Errorf("catalog has no jurisdictions")
	}

	loc, err := time.LoadLocation(DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("load display timezone: %w", err)
	}

	c := &Catalog{
		jurisdictions: make([]Jurisdiction, 0, len(jurisdictions)),
		index:         make(map[string]int, len(jurisdictions)),
		location:      loc,
	}
	for _, j := range jurisdictions {
		j.Slug = strings.TrimSpace(j.Slug)
		if j.Slug == "" {
			return nil, fmt.Errorf("jurisdiction slug is required")
		}
		if _, dup := c.index[j.Slug]; dup {
			return nil, fmt.Errorf("duplicate jurisdiction %q", j.Slug)
		}
		if j.DrawTime != "" {
			if _, err := time.Parse(DrawTimeLayout, j.DrawTime); err != nil {
				return nil, fmt.Errorf("jurisdiction %s: invalid draw time %q: %w", j.Slug, j.DrawTime, err)
			}
		}
		c.index[j.Slug] = len(c.jurisdictions)
		c.jurisdictions = append(c.jurisdictions, j)
	}

	return c, nil
}

// Default returns the built-in 36 jurisdiction catalog
func Default() *Catalog {
	c, err := New(defaultJurisdictions)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

// LoadFile reads a YAML catalog. An empty path yields the default catalog.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	return New(file.Jurisdictions)
}

// Jurisdictions returns the ordered list. Callers must not modify it.
func (c *Catalog) Jurisdictions() []Jurisdiction {
	return c.jurisdictions
}

// Slugs returns the ordered jurisdiction slugs
func (c *Catalog) Slugs() []string {
	slugs := make([]string, len(c.jurisdictions))
	for i, j := range c.jurisdictions {
		slugs[i] = j.Slug
	}
	return slugs
}

// Len returns the number of jurisdictions
func (c *Catalog) Len() int {
	return len(c.jurisdictions)
}

// Lookup finds a jurisdiction by slug
func (c *Catalog) Lookup(slug string) (Jurisdiction, bool) {
	i, ok := c.index[slug]
	if !ok {
		return Jurisdiction{}, false
	}
	return c.jurisdictions[i], true
}

// Position returns the fixed display position of slug, or -1
func (c *Catalog) Position(slug string) int {
	if i, ok := c.index[slug]; ok {
		return i
	}
	return -1
}

// Location returns the display timezone
func (c *Catalog) Location() *time.Location {
	return c.location
}

// DisplayName returns the configured override or the title-cased slug
func (c *Catalog) DisplayName(slug string) string {
	if j, ok := c.Lookup(slug); ok && j.DisplayName != "" {
		return j.DisplayName
	}
	return titleSlug(slug)
}

// Schedule maps slug to draw time for every jurisdiction that has one
func (c *Catalog) Schedule() map[string]string {
	schedule := make(map[string]string, len(c.jurisdictions))
	for _, j := range c.jurisdictions {
		if j.DrawTime != "" {
			schedule[j.Slug] = j.DrawTime
		}
	}
	return schedule
}

// DrawAt returns the draw instant for slug on the Eastern calendar day of now
func (c *Catalog) DrawAt(slug string, now time.Time) (time.Time, bool) {
	j, ok := c.Lookup(slug)
	if !ok || j.DrawTime == "" {
		return time.Time{}, false
	}
	clock, err := time.Parse(DrawTimeLayout, j.DrawTime)
	if err != nil {
		return time.Time{}, false
	}
	local := now.In(c.location)
	return time.Date(local.Year(), local.Month(), local.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, c.location), true
}

// WithSchedule returns a copy whose draw times are replaced by the entries of schedule
func (c *Catalog) WithSchedule(schedule map[string]string) (*Catalog, error) {
	jurisdictions := make([]Jurisdiction, len(c.jurisdictions))
	copy(jurisdictions, c.jurisdictions)
	for i := range jurisdictions {
		if t, ok := schedule[jurisdictions[i].Slug]; ok {
			jurisdictions[i].DrawTime = t
		}
	}
	return New(jurisdictions)
}

// titleSlug builds a fresh Caser per call since Casers are stateful
func titleSlug(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}
