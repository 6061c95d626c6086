package email

// Template names an embedded email template.
type Template string

const (
	// TemplateWelcome corresponds to templates/welcome.html
	TemplateWelcome Template = "welcome"
)

// PreviewData holds sample variables for every template, keyed by template name.
// It backs template tests and local previews.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"CustomerFirstName": "Joshua",
		"CustomerEmail":     "joshua@example.com",
	},
}
