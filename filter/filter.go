// Package filter compiles boolean expressions for client-side movie
// filtering. Expressions see the fields of a catalog entry (Title,
// Description, Genre, Director, Featured) plus a few string helpers:
//
//	flixctl movies list --filter 'Genre.Name == "Thriller"'
//	flixctl movies list --filter 'contains(Director.Name, "kubrick") and Featured'
package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/flixops/flixctl/myflix"
)

// Filter is a compiled movie filter expression.
type Filter struct {
	expression string
	program    *vm.Program
}

// helperFunctions are available inside every expression. String
// comparisons are case-insensitive.
func helperFunctions() map[string]any {
	return map[string]any{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// Compile compiles an expression into an executable filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // Allow movie properties
		expr.AsBool(),                  // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}

// Evaluate runs the filter against a single movie.
func (f *Filter) Evaluate(movie myflix.Movie) (bool, error) {
	env := helperFunctions()
	env["Movie"] = movie
	env["Title"] = movie.Title
	env["Description"] = movie.Description
	env["Genre"] = movie.Genre
	env["Director"] = movie.Director
	env["Featured"] = movie.Featured

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieTitle: movie.Title,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieTitle: movie.Title,
			Reason:     "expression did not produce a boolean",
		}
	}
	return matched, nil
}

// Apply returns the movies matching the filter. The first evaluation
// error aborts the pass.
func (f *Filter) Apply(movies []myflix.Movie) ([]myflix.Movie, error) {
	var matched []myflix.Movie
	for _, movie := range movies {
		ok, err := f.Evaluate(movie)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, movie)
		}
	}
	return matched, nil
}
