package scene

import (
	"encoding/json"
	"fmt"
)

// Document is the persisted form of a scene: the objects and the layer
// order. The selection is never persisted.
type Document struct {
	Objects    []RenderObject `json:"objects"`
	LayerOrder []string       `json:"layerOrder"`
}

// Document returns the scene's persisted form. Objects are listed in
// layer order.
func (s *Scene) Document() Document {
	return Document{
		Objects:    s.Objects(),
		LayerOrder: s.Order(),
	}
}

// MarshalJSON encodes the scene as a Document.
func (s *Scene) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Document())
}

// Load replaces the scene's contents with doc and clears the selection.
//
// The document is validated first: every object needs a non-empty,
// unique id and a known type. On failure ErrInvalidDocument is returned
// and the scene is left untouched.
//
// A missing layer order is tolerated: objects are then stacked in the
// order they are listed. Layer entries naming unknown or repeated ids are
// dropped, and objects the order omits are stacked on top in list order,
// so the loaded scene always satisfies the id/layer-order invariant.
func (s *Scene) Load(doc Document) error {
	objs, order, err := normalize(doc)
	if err != nil {
		return err
	}
	clear(s.selected)
	s.store.replace(objs, order)
	return nil
}

// LoadJSON decodes data as a Document and loads it.
func (s *Scene) LoadJSON(data []byte) error {
	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	return s.Load(doc)
}

// DecodeDocument parses a JSON document.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return doc, nil
}

func normalize(doc Document) ([]RenderObject, []string, error) {
	byID := make(map[string]struct{}, len(doc.Objects))
	for i, o := range doc.Objects {
		if o.ID == "" {
			return nil, nil, fmt.Errorf("%w: object %d has no id", ErrInvalidDocument, i)
		}
		if !o.Type.Valid() {
			return nil, nil, fmt.Errorf("%w: object %q has unknown type %q", ErrInvalidDocument, o.ID, o.Type)
		}
		if _, dup := byID[o.ID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate object id %q", ErrInvalidDocument, o.ID)
		}
		byID[o.ID] = struct{}{}
	}

	order := make([]string, 0, len(doc.Objects))
	placed := make(map[string]struct{}, len(doc.Objects))
	for _, id := range doc.LayerOrder {
		if _, known := byID[id]; !known {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		order = append(order, id)
	}
	for _, o := range doc.Objects {
		if _, ok := placed[o.ID]; !ok {
			placed[o.ID] = struct{}{}
			order = append(order, o.ID)
		}
	}
	return doc.Objects, order, nil
}
