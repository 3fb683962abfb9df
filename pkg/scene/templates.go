package scene

// Template is a read-only poster template.
type Template struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	ThumbnailRef string `json:"thumbnail" yaml:"thumbnail"`
}

var catalog = []Template{
	{ID: "template1", Name: "Business", ThumbnailRef: "https://images.unsplash.com/photo-1497215728101-856f4ea42174?w=200&h=200&fit=crop"},
	{ID: "template2", Name: "Event", ThumbnailRef: "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?w=200&h=200&fit=crop"},
	{ID: "template3", Name: "Social Media", ThumbnailRef: "https://images.unsplash.com/photo-1563986768494-4dee2763ff3f?w=200&h=200&fit=crop"},
	{ID: "template4", Name: "Portfolio", ThumbnailRef: "https://images.unsplash.com/photo-1522542550221-31fd19575a2d?w=200&h=200&fit=crop"},
	{ID: "template5", Name: "Wedding", ThumbnailRef: "https://images.unsplash.com/photo-1519741497674-611481863552?w=200&h=200&fit=crop"},
	{ID: "template6", Name: "Restaurant", ThumbnailRef: "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=200&h=200&fit=crop"},
}

// Templates returns the template catalog.
func Templates() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// FindTemplate looks a template up by id.
func FindTemplate(id string) (Template, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
