package valueobjects

// NodeKind is the closed category determining a node's payload shape
// and connection legality
type NodeKind string

const (
	KindFile   NodeKind = "file"
	KindNote   NodeKind = "note"
	KindEntity NodeKind = "entity"
)

// IsValid reports whether the kind is a member of the closed set
func (k NodeKind) IsValid() bool {
	switch k {
	case KindFile, KindNote, KindEntity:
		return true
	default:
		return false
	}
}

// NodePayload is the kind-specific data carried by a node
// Each kind has its own variant so kind-specific logic stays exhaustive
type NodePayload interface {
	Kind() NodeKind
	DisplayLabel() string
	ClonePayload() NodePayload
}

// FilePayload is the payload for file-kind nodes (archive documents)
type FilePayload struct {
	Label        string
	Content      string
	ThumbnailRef string
	FileRef      string
	Source       string
	Tags         []string
	Pinned       bool
}

// Kind returns the file kind
func (p FilePayload) Kind() NodeKind { return KindFile }

// DisplayLabel returns the display title
func (p FilePayload) DisplayLabel() string { return p.Label }

// ClonePayload returns a deep copy
func (p FilePayload) ClonePayload() NodePayload {
	p.Tags = cloneStrings(p.Tags)
	return p
}

// NotePayload is the payload for note-kind nodes
type NotePayload struct {
	Label   string
	Content string
	Source  string
	Tags    []string
	Pinned  bool
}

// Kind returns the note kind
func (p NotePayload) Kind() NodeKind { return KindNote }

// DisplayLabel returns the display title
func (p NotePayload) DisplayLabel() string { return p.Label }

// ClonePayload returns a deep copy
func (p NotePayload) ClonePayload() NodePayload {
	p.Tags = cloneStrings(p.Tags)
	return p
}

// EntityPayload is the payload for entity-kind nodes extracted by analysis
type EntityPayload struct {
	Label      string
	Content    string
	EntityType string
	Source     string
	Tags       []string
	Pinned     bool
}

// Kind returns the entity kind
func (p EntityPayload) Kind() NodeKind { return KindEntity }

// DisplayLabel returns the display title
func (p EntityPayload) DisplayLabel() string { return p.Label }

// ClonePayload returns a deep copy
func (p EntityPayload) ClonePayload() NodePayload {
	p.Tags = cloneStrings(p.Tags)
	return p
}

// PayloadPatch is a partial payload update; nil fields are left untouched
// Fields that do not apply to the node's kind are ignored
type PayloadPatch struct {
	Label        *string
	Content      *string
	ThumbnailRef *string
	FileRef      *string
	EntityType   *string
	Source       *string
	Tags         *[]string
	Pinned       *bool
}

// Apply merges the patch into the payload and returns the result
func (patch PayloadPatch) Apply(payload NodePayload) NodePayload {
	switch p := payload.(type) {
	case FilePayload:
		if patch.Label != nil {
			p.Label = *patch.Label
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.ThumbnailRef != nil {
			p.ThumbnailRef = *patch.ThumbnailRef
		}
		if patch.FileRef != nil {
			p.FileRef = *patch.FileRef
		}
		if patch.Source != nil {
			p.Source = *patch.Source
		}
		if patch.Tags != nil {
			p.Tags = cloneStrings(*patch.Tags)
		}
		if patch.Pinned != nil {
			p.Pinned = *patch.Pinned
		}
		return p
	case NotePayload:
		if patch.Label != nil {
			p.Label = *patch.Label
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.Source != nil {
			p.Source = *patch.Source
		}
		if patch.Tags != nil {
			p.Tags = cloneStrings(*patch.Tags)
		}
		if patch.Pinned != nil {
			p.Pinned = *patch.Pinned
		}
		return p
	case EntityPayload:
		if patch.Label != nil {
			p.Label = *patch.Label
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.EntityType != nil {
			p.EntityType = *patch.EntityType
		}
		if patch.Source != nil {
			p.Source = *patch.Source
		}
		if patch.Tags != nil {
			p.Tags = cloneStrings(*patch.Tags)
		}
		if patch.Pinned != nil {
			p.Pinned = *patch.Pinned
		}
		return p
	default:
		return payload
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
