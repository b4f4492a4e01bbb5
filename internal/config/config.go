// Package config loads the optional per-project compiscript.toml file.
//
// Grounded on the reference compiler's src/mods package: a small
// TOML-tagged struct unmarshaled with github.com/pelletier/go-toml,
// with defaults applied when the file is absent -- a Compiscript
// project file is optional, unlike the reference's required module
// file, since a single-file compile needs no project configuration at
// all.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Project is the decoded form of compiscript.toml.
type Project struct {
	Project ProjectSection `toml:"project"`
	Output  OutputSection  `toml:"output"`
}

// ProjectSection holds the [project] table.
type ProjectSection struct {
	Name  string `toml:"name"`
	Entry string `toml:"entry"`
}

// OutputSection holds the [output] table.
type OutputSection struct {
	EmitTac          bool   `toml:"emit-tac"`
	TacPath          string `toml:"tac-path"`
	WarningsAsErrors bool   `toml:"warnings-as-errors"`
}

// Default returns the configuration the CLI falls back to when no
// project file is given -- the reference compiler's equivalent is the
// zero-value BuildProfile before any TOML module is loaded.
func Default() *Project {
	return &Project{
		Output: OutputSection{
			EmitTac: true,
		},
	}
}

// Load reads and decodes the project file at path. A missing file is
// not an error -- it resolves to Default(), mirroring the reference's
// "bare CLI flags are sufficient" fallback.
func Load(path string) (*Project, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()

	proj := Default()
	if err := toml.NewDecoder(f).Decode(proj); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return proj, nil
}
