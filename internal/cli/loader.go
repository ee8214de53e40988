package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/ThreeTen/threetenbp-sub007/internal/compiler"
)

// LoadMode controls how errors are handled during chronology loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the chronology declarations found in a set of files.
type LoadResult struct {
	Specs []compiler.ChronologySpec

	// SpecFiles holds the file each entry of Specs was declared in.
	SpecFiles []string

	FileCount int // Number of CUE files found
}

// LoadError represents an error that occurred during chronology loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadChronologies compiles the chronology declarations in paths, each of
// which is a CUE file or a directory searched recursively.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
//
// A nil result means nothing could be scanned.
func LoadChronologies(paths []string, mode LoadMode) (*LoadResult, []error) {
	files, err := findAllCUEFiles(paths)
	if err != nil {
		return nil, []error{err}
	}

	var errs []error
	ctx := cuecontext.New()
	result := &LoadResult{FileCount: len(files)}
	declaredIn := map[string]string{}

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)})
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}

		v := ctx.CompileBytes(src, cue.Filename(path))
		if err := v.Err(); err != nil {
			errs = append(errs, convertCUEError(err))
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}

		specs, err := compiler.CompileChronologies(v)
		if err != nil {
			errs = append(errs, convertCompileError(err, path))
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}

		for _, spec := range specs {
			if prev, dup := declaredIn[spec.Name]; dup {
				errs = append(errs, &LoadError{
					Code:    ErrCodeDuplicate,
					Message: fmt.Sprintf("%s: chronology %s already declared in %s", path, spec.Name, prev),
				})
				if mode == LoadModeFailFast {
					return result, errs
				}
				continue
			}
			declaredIn[spec.Name] = path
			result.Specs = append(result.Specs, spec)
			result.SpecFiles = append(result.SpecFiles, path)
		}
	}

	if len(result.Specs) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no chronologies found"})
	}
	return result, errs
}

// LoadCatalog compiles the chronologies in paths into a catalog. No paths
// means the ISO rules only.
func LoadCatalog(paths []string) (*compiler.Catalog, error) {
	if len(paths) == 0 {
		return compiler.NewCatalog(), nil
	}
	files, err := findAllCUEFiles(paths)
	if err != nil {
		return nil, err
	}
	cat, err := compiler.LoadFiles(files...)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
	}
	return cat, nil
}

// findAllCUEFiles expands every path and requires at least one CUE file.
func findAllCUEFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		found, err := FindCUEFiles(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %v", paths)}
	}
	return files, nil
}

// FindCUEFiles returns path itself when it is a file, or every .cue file
// below it, sorted, when it is a directory.
func FindCUEFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("chronology path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing %s: %v", path, err)}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == ".cue" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	sort.Strings(files)
	return files, nil
}

// convertCUEError keeps the first error and position of a CUE build failure.
func convertCUEError(err error) *LoadError {
	le := &LoadError{Code: ErrCodeBuildFailed, Message: err.Error()}
	if all := cueerrors.Errors(err); len(all) > 0 {
		le.Message = all[0].Error()
		if pos := cueerrors.Positions(all[0]); len(pos) > 0 {
			le.Pos = pos[0]
		}
	}
	return le
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeScanError    = "E002" // Directory scan error
	ErrCodeNoFiles      = "E003" // No CUE files found
	ErrCodeLoadFailed   = "E004" // File read failed
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeBuildFailed  = "E006" // CUE build or chronology compile failed
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeDuplicate    = "E008" // Chronology declared twice
	ErrCodeBadArgument  = "E009" // Malformed field argument, unknown field or zone
	ErrCodeJournal      = "E010" // Journal database error
	ErrCodeRegistration = "E011" // Chronology rejected by the registry

	// Chronology compile errors
	ErrCodeChronologyShape = "E120" // Chronology missing rules and relations
	ErrCodeRuleShape       = "E121" // Malformed rule declaration
	ErrCodeRelationShape   = "E122" // Malformed relation declaration
)

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch {
	case field == "cue":
		return ErrCodeBuildFailed
	case strings.HasPrefix(field, "chronology"):
		return ErrCodeChronologyShape
	case strings.HasPrefix(field, "rule"):
		return ErrCodeRuleShape
	case strings.HasPrefix(field, "relation"):
		return ErrCodeRelationShape
	default:
		return ErrCodeGeneric
	}
}
