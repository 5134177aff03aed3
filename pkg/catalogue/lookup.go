package catalogue

// Paradigm returns the paradigm with the given id.
func (c *Catalogue) Paradigm(id string) (Paradigm, bool) {
	for _, p := range c.Paradigms {
		if p.ID == id {
			return p, true
		}
	}
	return Paradigm{}, false
}

// File returns the file registry entry with the given id.
func (c *Catalogue) File(id string) (File, bool) {
	for _, f := range c.Files {
		if f.ID == id {
			return f, true
		}
	}
	return File{}, false
}

// Document returns the document stored under exactly the given key.
func (c *Catalogue) Document(k Key) (*Document, bool) {
	for i := range c.Documents {
		if c.Documents[i].Key() == k {
			return &c.Documents[i], true
		}
	}
	return nil, false
}

// Resolve looks up the document for a composite identifier. A file-specific
// document wins; when fileID is set but has no document of its own for the
// paradigm, the paradigm-level document is used. Documents without steps
// never resolve.
func (c *Catalogue) Resolve(fileID, paradigmID string) (*Document, bool) {
	if paradigmID == "" {
		return nil, false
	}
	if fileID != "" {
		if d, ok := c.Document(Key{File: fileID, Paradigm: paradigmID}); ok && len(d.Steps) > 0 {
			return d, true
		}
	}
	d, ok := c.Document(Key{Paradigm: paradigmID})
	if !ok || len(d.Steps) == 0 {
		return nil, false
	}
	return d, true
}

// FilesInLayer returns the registry entries of one map layer, in registry order.
func (c *Catalogue) FilesInLayer(l Layer) []File {
	var out []File
	for _, f := range c.Files {
		if f.Layer == l {
			out = append(out, f)
		}
	}
	return out
}

// FileDocuments returns the file-specific documents of a file.
func (c *Catalogue) FileDocuments(fileID string) []*Document {
	var out []*Document
	for i := range c.Documents {
		if c.Documents[i].File == fileID && fileID != "" {
			out = append(out, &c.Documents[i])
		}
	}
	return out
}
