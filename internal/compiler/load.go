package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// LoadFiles compiles the chronology declarations in each CUE file and
// returns a catalog over them. Each file is compiled on its own; a
// chronology name may only be declared once across all files.
func LoadFiles(paths ...string) (*Catalog, error) {
	ctx := cuecontext.New()
	declaredIn := map[string]string{}
	var chronologies []*Chronology

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read chronology file: %w", err)
		}
		v := ctx.CompileBytes(src, cue.Filename(path))
		if err := v.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, formatCUEError(err))
		}
		specs, err := CompileChronologies(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i := range specs {
			name := specs[i].Name
			if prev, dup := declaredIn[name]; dup {
				return nil, fmt.Errorf("%s: chronology %s already declared in %s", path, name, prev)
			}
			declaredIn[name] = path

			c, err := Build(&specs[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			chronologies = append(chronologies, c)
		}
	}
	return NewCatalog(chronologies...), nil
}
