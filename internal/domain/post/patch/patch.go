package patch

// Patch is a merge patch for a post. Nil fields are left unchanged.
type Patch struct {
	title *string
	body  *string
}

// New builds a Patch from request fields.
// Both nil and empty strings count as "not supplied": an empty title never
// overwrites the stored one. Clients rely on this, so keep it.
func New(title, body *string) Patch {
	var p Patch
	if title != nil && *title != "" {
		t := *title
		p.title = &t
	}
	if body != nil && *body != "" {
		b := *body
		p.body = &b
	}
	return p
}

// Title returns the new title, or nil if unchanged.
func (p Patch) Title() *string { return p.title }

// Body returns the new body, or nil if unchanged.
func (p Patch) Body() *string { return p.body }

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool { return p.title == nil && p.body == nil }
