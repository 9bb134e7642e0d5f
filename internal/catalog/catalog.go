// Package catalog holds the fixed institutional vocabularies (official course
// names, campus aliases, campus→city) and the pure normalization functions
// that map raw extracted strings onto them. Catalogs are immutable after
// Load and safe for concurrent use across document workers.
package catalog

import (
	"embed"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

//go:embed data/courses.toml data/campuses.toml
var dataFS embed.FS

type coursesFile struct {
	Official []string          `toml:"official"`
	Aliases  map[string]string `toml:"aliases"`
}

type campusesFile struct {
	Aliases map[string]string `toml:"aliases"`
	Cities  map[string]string `toml:"cities"`
}

// Catalog is the read-only lookup state, built once per process. The sorted
// key slices make the substring-containment fallback deterministic; map
// iteration order would make repeated runs disagree.
type Catalog struct {
	courseByKey  map[string]string // folded-upper spelling -> official course name
	campusByKey  map[string]string // folded-upper spelling -> official campus name
	cityByCampus map[string]string // official campus name -> city
	courseKeys   []string
	campusKeys   []string
}

// Load parses the embedded catalog files and builds the lookup tables.
func Load(logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var courses coursesFile
	raw, err := dataFS.ReadFile("data/courses.toml")
	if err != nil {
		return nil, fmt.Errorf("read courses catalog: %w", err)
	}
	if err := toml.Unmarshal(raw, &courses); err != nil {
		return nil, fmt.Errorf("parse courses catalog: %w", err)
	}

	var campuses campusesFile
	raw, err = dataFS.ReadFile("data/campuses.toml")
	if err != nil {
		return nil, fmt.Errorf("read campuses catalog: %w", err)
	}
	if err := toml.Unmarshal(raw, &campuses); err != nil {
		return nil, fmt.Errorf("parse campuses catalog: %w", err)
	}

	c := &Catalog{
		courseByKey:  make(map[string]string, 2*len(courses.Official)+len(courses.Aliases)),
		campusByKey:  make(map[string]string, len(campuses.Aliases)+len(campuses.Cities)),
		cityByCampus: make(map[string]string, len(campuses.Cities)),
	}

	for _, name := range courses.Official {
		c.courseByKey[foldKey(name)] = name
	}
	for alias, name := range courses.Aliases {
		c.courseByKey[foldKey(alias)] = name
	}

	for alias, name := range campuses.Aliases {
		c.campusByKey[foldKey(alias)] = name
	}
	for campus, city := range campuses.Cities {
		// every official campus is also its own alias
		c.campusByKey[foldKey(campus)] = campus
		c.cityByCampus[campus] = city
	}

	c.courseKeys = sortedKeys(c.courseByKey)
	c.campusKeys = sortedKeys(c.campusByKey)

	logger.Info("catalog.load.ok",
		"course_keys", len(c.courseByKey),
		"campus_keys", len(c.campusByKey),
		"campus_cities", len(c.cityByCampus),
	)
	return c, nil
}
