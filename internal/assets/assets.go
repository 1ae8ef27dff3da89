package assets

// DefaultStyleName is the name of the built-in style used for documents.
const DefaultStyleName = "chat"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded CSS style by name, without the .css extension.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// StyleNames lists the embedded styles in lexical order.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
