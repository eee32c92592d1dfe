package store

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ Database   = (*MemoryDatabase)(nil)
	_ Collection = (*MemoryCollection)(nil)
)

// MemoryDatabase is a process-local Database used for STORE_DRIVER=memory and tests
type MemoryDatabase struct {
	mu          sync.Mutex
	collections map[string]*MemoryCollection
}

func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{collections: make(map[string]*MemoryCollection)}
}

// Collection returns the named collection, creating it on first use
func (m *MemoryDatabase) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[name]
	if !ok {
		c = &MemoryCollection{name: name}
		m.collections[name] = c
	}
	return c
}

// MemoryCollection keeps documents as raw BSON in insertion order.
// Filters support exact top-level field equality only.
type MemoryCollection struct {
	mu   sync.RWMutex
	name string
	docs []bson.Raw
}

func (c *MemoryCollection) Find(_ context.Context, filter bson.M, out interface{}) error {
	match, err := matcher(filter)
	if err != nil {
		return err
	}

	c.mu.RLock()
	docs := bson.A{}
	for _, d := range c.docs {
		if match(d) {
			docs = append(docs, d)
		}
	}
	c.mu.RUnlock()

	data, err := bson.Marshal(bson.D{{Key: "docs", Value: docs}})
	if err != nil {
		return fmt.Errorf("find in %s: %w", c.name, err)
	}
	if err := bson.Raw(data).Lookup("docs").Unmarshal(out); err != nil {
		return fmt.Errorf("decode %s: %w", c.name, err)
	}
	return nil
}

func (c *MemoryCollection) FindOne(_ context.Context, filter bson.M, out interface{}) error {
	match, err := matcher(filter)
	if err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.docs {
		if match(d) {
			if err := bson.Unmarshal(d, out); err != nil {
				return fmt.Errorf("decode %s: %w", c.name, err)
			}
			return nil
		}
	}
	return ErrNotFound
}

func (c *MemoryCollection) InsertOne(_ context.Context, doc interface{}) (*InsertResult, error) {
	raw, id, err := withID(doc)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	idValue := raw.Lookup("_id")
	for _, d := range c.docs {
		if got, err := d.LookupErr("_id"); err == nil && sameValue(got, idValue) {
			return nil, fmt.Errorf("insert into %s: %w", c.name, ErrDuplicateID)
		}
	}
	c.docs = append(c.docs, raw)
	return &InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (c *MemoryCollection) UpdateOne(_ context.Context, filter bson.M, set interface{}, upsert bool) (*UpdateResult, error) {
	match, err := matcher(filter)
	if err != nil {
		return nil, err
	}
	patch, err := toRaw(set)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, d := range c.docs {
		if !match(d) {
			continue
		}
		merged, err := merge(d, patch)
		if err != nil {
			return nil, fmt.Errorf("update %s: %w", c.name, err)
		}
		res := &UpdateResult{Acknowledged: true, MatchedCount: 1}
		if !bytes.Equal(merged, d) {
			c.docs[i] = merged
			res.ModifiedCount = 1
		}
		return res, nil
	}

	if !upsert {
		return &UpdateResult{Acknowledged: true}, nil
	}
	id, err := c.upsertLocked(filter, patch)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.name, err)
	}
	return &UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
}

func (c *MemoryCollection) InsertIfAbsent(_ context.Context, filter bson.M, doc interface{}) (*UpdateResult, error) {
	match, err := matcher(filter)
	if err != nil {
		return nil, err
	}
	patch, err := toRaw(doc)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.docs {
		if match(d) {
			return &UpdateResult{Acknowledged: true, MatchedCount: 1}, nil
		}
	}
	id, err := c.upsertLocked(filter, patch)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.name, err)
	}
	return &UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
}

func (c *MemoryCollection) DeleteOne(_ context.Context, filter bson.M) (*DeleteResult, error) {
	match, err := matcher(filter)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, d := range c.docs {
		if match(d) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return &DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &DeleteResult{Acknowledged: true}, nil
}

// upsertLocked seeds a new document from the filter's equality fields and
// applies patch on top, the way MongoDB builds an upserted document.
func (c *MemoryCollection) upsertLocked(filter bson.M, patch bson.Raw) (interface{}, error) {
	seed, err := toRaw(filter)
	if err != nil {
		return nil, err
	}
	merged, err := merge(seed, patch)
	if err != nil {
		return nil, err
	}
	raw, id, err := withID(merged)
	if err != nil {
		return nil, err
	}
	c.docs = append(c.docs, raw)
	return id, nil
}

func matcher(filter bson.M) (func(bson.Raw) bool, error) {
	if len(filter) == 0 {
		return func(bson.Raw) bool { return true }, nil
	}
	want, err := toRaw(filter)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	elems, err := want.Elements()
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	return func(doc bson.Raw) bool {
		for _, e := range elems {
			got, err := doc.LookupErr(e.Key())
			if err != nil {
				return false
			}
			if !sameValue(got, e.Value()) {
				return false
			}
		}
		return true
	}, nil
}

func sameValue(a, b bson.RawValue) bool {
	return a.Type == b.Type && bytes.Equal(a.Value, b.Value)
}

func toRaw(v interface{}) (bson.Raw, error) {
	switch t := v.(type) {
	case nil:
		return bson.Marshal(bson.D{})
	case bson.Raw:
		return t, nil
	case bson.M:
		if t == nil {
			return bson.Marshal(bson.D{})
		}
	}
	return bson.Marshal(v)
}

// merge returns base with every top-level field of patch set on it
func merge(base, patch bson.Raw) (bson.Raw, error) {
	baseElems, err := base.Elements()
	if err != nil {
		return nil, err
	}
	patchElems, err := patch.Elements()
	if err != nil {
		return nil, err
	}

	out := make(bson.D, 0, len(baseElems)+len(patchElems))
	index := make(map[string]int, len(baseElems))
	for _, e := range baseElems {
		index[e.Key()] = len(out)
		out = append(out, bson.E{Key: e.Key(), Value: e.Value()})
	}
	for _, e := range patchElems {
		if i, ok := index[e.Key()]; ok {
			out[i].Value = e.Value()
			continue
		}
		index[e.Key()] = len(out)
		out = append(out, bson.E{Key: e.Key(), Value: e.Value()})
	}
	return bson.Marshal(out)
}

// withID encodes doc, assigning a fresh ObjectID when it has no _id
func withID(doc interface{}) (bson.Raw, interface{}, error) {
	raw, err := toRaw(doc)
	if err != nil {
		return nil, nil, err
	}
	if existing, err := raw.LookupErr("_id"); err == nil {
		var id interface{}
		if err := existing.Unmarshal(&id); err != nil {
			return nil, nil, err
		}
		return raw, id, nil
	}

	id := primitive.NewObjectID()
	elems, err := raw.Elements()
	if err != nil {
		return nil, nil, err
	}
	out := make(bson.D, 0, len(elems)+1)
	out = append(out, bson.E{Key: "_id", Value: id})
	for _, e := range elems {
		out = append(out, bson.E{Key: e.Key(), Value: e.Value()})
	}
	data, err := bson.Marshal(out)
	if err != nil {
		return nil, nil, err
	}
	return data, id, nil
}
