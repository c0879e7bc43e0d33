package resource

// Builder accumulates resource declarations in the order they are declared.
// It is not safe for concurrent use.
type Builder struct {
	declarations []*Declaration
	byID         map[string]*Declaration
	finalized    bool
}

func NewBuilder() *Builder {
	return &Builder{
		byID: make(map[string]*Declaration),
	}
}

// Declare registers a resource of the given kind. The returned declaration is
// the handle for the registered resource.
func (b *Builder) Declare(kind Kind, name string) (*Declaration, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	if !kind.Valid() {
		return nil, UnknownKindError{Kind: string(kind)}
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	decl := &Declaration{ResourceName: name, Kind: kind}
	if existing, ok := b.byID[decl.ID()]; ok {
		return nil, DuplicateNameError{Name: name, Existing: existing.Kind}
	}

	b.byID[decl.ID()] = decl
	b.declarations = append(b.declarations, decl)
	return decl, nil
}

// Declarations returns a copy of the declarations in declaration order.
func (b *Builder) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(b.declarations))
	for _, d := range b.declarations {
		decls = append(decls, *d)
	}
	return decls
}

func (b *Builder) Len() int {
	return len(b.declarations)
}

func (b *Builder) Finalized() bool {
	return b.finalized
}

// Finalize freezes the builder and returns its declarations. Any later
// Declare or Finalize call fails with ErrFinalized.
func (b *Builder) Finalize() ([]Declaration, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true
	return b.Declarations(), nil
}
