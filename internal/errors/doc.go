// Package errors provides coded, actionable error messages for the psychat
// command line.
//
// Each error has a unique code (e.g., "P101") that maps to a category, a
// short message and a longer explanation. Call sites attach the underlying
// cause and a hint for the operator:
//
//	err := errors.New("P101").
//	    WithDetail("line 3: expected '='").
//	    WithSuggestion("Check that psychat.toml is valid TOML").
//	    Wrap(parseErr)
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR P101: Invalid configuration file
//	//
//	//   line 3: expected '='
//	//
//	//   Hint: Check that psychat.toml is valid TOML
package errors
