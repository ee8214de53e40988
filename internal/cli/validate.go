package cli

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
	"github.com/spf13/cobra"

	"github.com/ThreeTen/threetenbp-sub007/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid        bool                       `json:"valid"`
	Chronologies []string                   `json:"chronologies,omitempty"`
	Errors       []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path...]",
		Short: "Validate chronology declarations",
		Long: `Validate CUE chronology declarations without merging anything.

Checks CUE syntax, the shape of every rule and relation, unit and bound
consistency, relation cycles, and that each chronology can be installed
next to the ISO rules. With no paths, the --chronology paths are used.

Exit codes:
  0 - All chronologies valid
  1 - One or more validation errors
  2 - Command error (path not found, no CUE files)`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = rootOpts.Chronologies
			}
			return runValidate(rootOpts, paths, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	if len(paths) == 0 {
		return outputValidateError(formatter, ErrCodeNoFiles, "no chronology paths given", nil)
	}

	loadResult, loadErrors := LoadChronologies(paths, LoadModeCollectAll)

	// Handle load errors (path not found, no files, etc.)
	if loadResult == nil {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputValidateError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s)", loadResult.FileCount)

	var validationErrors []compiler.ValidationError
	for _, err := range loadErrors {
		validationErrors = append(validationErrors, loadErrorToValidation(err))
	}
	validationErrors = append(validationErrors, ValidateSpecs(loadResult.Specs, formatter)...)

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors)
	}

	names := make([]string, len(loadResult.Specs))
	for i, s := range loadResult.Specs {
		names[i] = s.Name
	}
	return outputValidateSuccess(formatter, names)
}

// ValidateSpecs validates every declaration and, when all are valid,
// installs them together into an ISO registry.
func ValidateSpecs(specs []compiler.ChronologySpec, formatter *OutputFormatter) []compiler.ValidationError {
	var allErrors []compiler.ValidationError
	for i := range specs {
		formatter.VerboseLog("Validating chronology: %s", specs[i].Name)
		allErrors = append(allErrors, compiler.Validate(&specs[i])...)
	}
	if len(allErrors) > 0 {
		return allErrors
	}

	chronologies := make([]*compiler.Chronology, 0, len(specs))
	for i := range specs {
		c, err := compiler.Build(&specs[i])
		if err != nil {
			allErrors = append(allErrors, compiler.ValidationError{
				Field:   "chronology." + specs[i].Name,
				Message: err.Error(),
				Code:    ErrCodeBuildFailed,
			})
			continue
		}
		chronologies = append(chronologies, c)
	}
	if len(allErrors) > 0 {
		return allErrors
	}
	if _, err := compiler.NewCatalog(chronologies...).Registry(); err != nil {
		allErrors = append(allErrors, compiler.ValidationError{
			Field:   "registry",
			Message: err.Error(),
			Code:    ErrCodeRegistration,
		})
	}
	return allErrors
}

func loadErrorToValidation(err error) compiler.ValidationError {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return compiler.ValidationError{
			Field:   "load",
			Message: loadErr.Message,
			Code:    loadErr.Code,
			Line:    lineOf(loadErr.Pos),
		}
	}
	return compiler.ValidationError{Field: "load", Message: err.Error(), Code: ErrCodeGeneric}
}

// lineOf extracts the line number from a CUE position.
func lineOf(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, names []string) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Chronologies: names})
	}

	fmt.Fprintf(formatter.Writer, "✓ All chronologies valid (%d)\n", len(names))
	return nil
}

// outputValidateError outputs a single command-level error (exit code 2).
func outputValidateError(formatter *OutputFormatter, code, message string, details any) error {
	return formatter.Fail(ExitCommandError, code, message, details)
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := writeIndentedJSON(formatter.Writer, response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
