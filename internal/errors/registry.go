package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// Codes for the errors the engine reports.
const (
	CodeResolutionMiss       = "E001"
	CodeRegistryWriteFailure = "E002"
	CodeDuplicateDefinition  = "E003"
	CodeSourceListing        = "E010"
	CodeLoaderFailed         = "E011"
	CodeInvalidConfig        = "E020"
	CodeConfigNotFound       = "E021"
	CodeInvalidPort          = "E022"
	CodeTemplateParse        = "E030"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Core (E001-E009)
	// ============================================

	"E001": {
		Category: CategoryResolution,
		Message:  "Resolution miss",
	},
	"E002": {
		Category: CategoryRegistry,
		Message:  "Registry write failure",
		DocURL:   "https://squirrel-ui.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryRegistry,
		Message:  "Duplicate definition",
	},

	// ============================================
	// Component Sources (E010-E019)
	// ============================================

	"E010": {
		Category: CategorySource,
		Message:  "Component source listing failed",
		Detail:   "The component source could not be enumerated.",
	},
	"E011": {
		Category: CategorySource,
		Message:  "Component loader failed",
		Detail:   "A lazily loaded component builder returned an error.",
	},

	// ============================================
	// Configuration (E020-E029)
	// ============================================

	"E020": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		DocURL:   "https://squirrel-ui.dev/docs/config",
	},
	"E021": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	"E022": {
		Category: CategoryConfig,
		Message:  "Invalid port",
	},

	// ============================================
	// Templates (E030-E039)
	// ============================================

	"E030": {
		Category: CategoryTemplate,
		Message:  "Template parse error",
		Detail:   "The template file is not a valid YAML mapping of template names to configurations.",
	},
}

// Lookup returns the template for a code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
