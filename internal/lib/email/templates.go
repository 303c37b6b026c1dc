package email

// Template names an HTML template under templates/emails.
type Template string

const (
	TemplateWelcome Template = "welcome"
)

// PreviewData provides sample values per template for local preview.
var PreviewData = map[string]map[string]string{
	"welcome": {
		"UserFirstName": "John",
	},
}
