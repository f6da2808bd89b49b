package dwolla

// Environment is a pair of base URLs for the resource API and the token
// endpoint. A custom Environment can be passed wherever an
// EnvironmentSelector is accepted.
type Environment struct {
	APIURL   string
	TokenURL string
}

// Resolve returns the environment unchanged.
func (e Environment) Resolve() Environment { return e }

// EnvironmentName selects one of the preset environments.
type EnvironmentName string

const (
	Production EnvironmentName = "production"
	Sandbox    EnvironmentName = "sandbox"
)

var environments = map[EnvironmentName]Environment{
	Production: {
		APIURL:   "https://api.dwolla.com",
		TokenURL: "https://api.dwolla.com/token",
	},
	Sandbox: {
		APIURL:   "https://api-sandbox.dwolla.com",
		TokenURL: "https://api-sandbox.dwolla.com/token",
	},
}

// Valid reports whether the name refers to a preset.
func (n EnvironmentName) Valid() bool {
	_, ok := environments[n]
	return ok
}

// Resolve returns the preset for the name. Unknown names fall back to
// production; NewClient rejects them before this is reached.
func (n EnvironmentName) Resolve() Environment {
	if env, ok := environments[n]; ok {
		return env
	}
	return environments[Production]
}

// EnvironmentSelector is either an EnvironmentName or an Environment.
type EnvironmentSelector interface {
	Resolve() Environment
}

// ResolveEnvironment turns a selector into concrete URLs. A nil selector
// means production.
func ResolveEnvironment(sel EnvironmentSelector) Environment {
	if sel == nil {
		return environments[Production]
	}
	return sel.Resolve()
}
