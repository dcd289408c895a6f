package works

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Project is one entry of the works grid
type Project struct {
	Image string `toml:"image"`
	Title string `toml:"title"`
	Link  string `toml:"link"`
}

// ErrEmptyCatalog is returned when a catalog file lists no projects
var ErrEmptyCatalog = errors.New("catalog has no projects")

type catalogFile struct {
	Projects []Project `toml:"project"`
}

// DefaultProjects returns the built-in catalog
func DefaultProjects() []Project {
	return []Project{
		{Image: "assets/images/shard-01.png", Title: "NinjaDAO", Link: "work-ninjadao.html"},
		{Image: "assets/images/shard-02.png", Title: "SWC Project", Link: "work-swc.html"},
		{Image: "assets/images/shard-03.png", Title: "Kisekae App", Link: "work-kisekae.html"},
		{Image: "assets/images/shard-04.png", Title: "Crystal UI", Link: "#work-4"},
		{Image: "assets/images/shard-05.png", Title: "Portfolio", Link: "#work-5"},
	}
}

// LoadCatalog reads [[project]] tables from a TOML file
func LoadCatalog(path string) ([]Project, error) {
	var file catalogFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return validate(file.Projects, path)
}

// ParseCatalog decodes catalog TOML from memory
func ParseCatalog(data string) ([]Project, error) {
	var file catalogFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return validate(file.Projects, "<inline>")
}

func validate(projects []Project, source string) ([]Project, error) {
	if len(projects) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyCatalog)
	}
	for i, p := range projects {
		if p.Title == "" {
			return nil, fmt.Errorf("%s: project %d has no title", source, i)
		}
	}
	return projects, nil
}
