// Package pagination provides offset pagination helpers for list endpoints.
package pagination

// Params carries offset pagination values decoded from list query strings.
type Params struct {
	Limit  int `query:"limit"  json:"limit,omitempty"`
	Offset int `query:"offset" json:"offset,omitempty"`
}

// Normalize applies defaults and constraints.
func (p *Params) Normalize(opts ...Option) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if p.Limit <= 0 {
		p.Limit = o.DefaultLimit
	}
	if p.Limit > o.MaxLimit {
		p.Limit = o.MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
