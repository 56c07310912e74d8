package catalog

import (
	"context"
	"os"

	glua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"

	"github.com/dshills/mathclip/internal/errors"
	"github.com/dshills/mathclip/internal/plugin/lua"
)

// File is the on-disk layout of a symbols extension file:
//
//	symbols:
//	  - name: norm
//	    template: "left\\| {} \\right\\|"
//	  - name: R
type File struct {
	Symbols []SymbolEntry `yaml:"symbols"`
}

// LoadFile reads extension entries from a YAML file.
func LoadFile(path string) ([]SymbolEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read symbols file %s", path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parse symbols file %s", path)
	}
	for _, e := range f.Symbols {
		if err := validateName(e.Name); err != nil {
			return nil, errors.Wrapf(err, "symbols file %s", path)
		}
	}
	return f.Symbols, nil
}

// LoadScript runs a Lua script that declares entries with two globals:
//
//	symbol("R")                       -- plain
//	snippet("norm", "left| {} \\right|") -- template
func LoadScript(ctx context.Context, path string) ([]SymbolEntry, error) {
	state := lua.NewState()
	defer state.Close()

	var entries []SymbolEntry
	state.RegisterFunc("symbol", func(L *glua.LState) int {
		entries = append(entries, SymbolEntry{Name: L.CheckString(1)})
		return 0
	})
	state.RegisterFunc("snippet", func(L *glua.LState) int {
		entries = append(entries, SymbolEntry{Name: L.CheckString(1), Template: L.CheckString(2)})
		return 0
	})

	if err := state.DoFile(ctx, path); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := validateName(e.Name); err != nil {
			return nil, errors.Wrapf(err, "script %s", path)
		}
	}
	return entries, nil
}

// Sources names the optional extension inputs merged over the builtin
// vocabulary.
type Sources struct {
	File   string
	Script string
}

// Load builds the process catalog: the builtin vocabulary, then the YAML
// file, then the script. Later definitions replace earlier ones by name.
func Load(ctx context.Context, src Sources) (*Catalog, error) {
	cat := Default()
	if src.File == "" && src.Script == "" {
		return cat, nil
	}

	var extra []SymbolEntry
	if src.File != "" {
		entries, err := LoadFile(src.File)
		if err != nil {
			return nil, err
		}
		extra = append(extra, entries...)
	}
	if src.Script != "" {
		entries, err := LoadScript(ctx, src.Script)
		if err != nil {
			return nil, err
		}
		extra = append(extra, entries...)
	}
	return cat.Merge(extra)
}
