package hal

// Link is a single HAL relation.
type Link struct {
	Href         string `json:"href"`
	Type         string `json:"type,omitempty"`
	ResourceType string `json:"resource-type,omitempty"`
}

// Links maps relation names to links, as found under "_links".
type Links map[string]Link

// Linked is implemented by anything that carries HAL links. Resources and
// raw decoded bodies are addressed through their "self" relation.
type Linked interface {
	HasLink(name string) bool
	Href(name string) string
}

// HasLink reports whether the relation is present.
func (l Links) HasLink(name string) bool {
	_, ok := l[name]
	return ok
}

// Href returns the href of the relation, or "" when it is absent.
func (l Links) Href(name string) string {
	return l[name].Href
}

// Resource is embedded by every resource model.
type Resource struct {
	Links Links `json:"_links,omitempty"`
}

func (r Resource) HasLink(name string) bool { return r.Links.HasLink(name) }

func (r Resource) Href(name string) string { return r.Links.Href(name) }

// SelfHref returns the canonical URL of the resource.
func (r Resource) SelfHref() string { return r.Links.Href("self") }

// SelfHref extracts _links.self.href from a raw decoded HAL body.
func SelfHref(raw map[string]any) (string, bool) {
	links, ok := raw["_links"].(map[string]any)
	if !ok {
		return "", false
	}
	self, ok := links["self"].(map[string]any)
	if !ok {
		return "", false
	}
	href, ok := self["href"].(string)
	return href, ok && href != ""
}
