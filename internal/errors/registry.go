package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Configuration (P100-P199)
	"P100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "The configuration file given on the command line does not exist.",
	},
	"P101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed as TOML.",
	},
	"P102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
	},

	// Routing (P200-P299)
	"P200": {
		Category: CategoryRouting,
		Message:  "Invalid route table",
		Detail:   "The route table contains duplicate names, duplicate templates or conflicting parameters.",
	},
	"P201": {
		Category: CategoryRouting,
		Message:  "Route not found",
		Detail:   "The path does not match any registered route.",
	},
	"P202": {
		Category: CategoryRouting,
		Message:  "Cannot build route path",
		Detail:   "The route name is unknown or a required parameter is missing.",
	},

	// Server (P300-P399)
	"P300": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
	},

	// CLI (P400-P499)
	"P400": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
