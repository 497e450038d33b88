package annotation

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/annotate/internal/event"
)

// Topics published by File.
const (
	TopicAdded   event.Topic = "annotation.file.added"
	TopicRemoved event.Topic = "annotation.file.removed"
)

// Publisher receives change notifications.
type Publisher interface {
	Publish(topic event.Topic, payload any)
}

// Change is the payload of File notifications.
type Change struct {
	File       string
	Annotation *Annotation
	Index      int
}

// File is an ordered collection of live annotations.
type File struct {
	mu    sync.RWMutex
	name  string
	items []*Annotation
	byID  map[uuid.UUID]*Annotation
	pub   Publisher
}

// NewFile creates an empty file. pub may be nil.
func NewFile(name string, pub Publisher) *File {
	return &File{
		name: name,
		byID: make(map[uuid.UUID]*Annotation),
		pub:  pub,
	}
}

// Name returns the file name.
func (f *File) Name() string {
	return f.name
}

// Add appends an annotation and returns its index.
func (f *File) Add(a *Annotation) (int, error) {
	f.mu.Lock()
	idx, err := f.insertLocked(len(f.items), a)
	f.mu.Unlock()
	if err != nil {
		return -1, err
	}
	f.notify(TopicAdded, a, idx)
	return idx, nil
}

// Insert places an annotation at index, shifting later annotations.
func (f *File) Insert(index int, a *Annotation) error {
	f.mu.Lock()
	idx, err := f.insertLocked(index, a)
	f.mu.Unlock()
	if err != nil {
		return err
	}
	f.notify(TopicAdded, a, idx)
	return nil
}

func (f *File) insertLocked(index int, a *Annotation) (int, error) {
	if a == nil {
		return -1, ErrNilAnnotation
	}
	if a.owner != nil && a.owner != f {
		return -1, fmt.Errorf("%w: %s", ErrOwnedElsewhere, a)
	}
	if _, ok := f.byID[a.id]; ok {
		return -1, fmt.Errorf("%w: %s", ErrDuplicateID, a)
	}
	if index < 0 || index > len(f.items) {
		return -1, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(f.items))
	}

	f.items = slices.Insert(f.items, index, a)
	f.byID[a.id] = a
	a.owner = f
	return index, nil
}

// Remove removes the annotation with the given identity and returns its
// former index.
func (f *File) Remove(id uuid.UUID) (int, *Annotation, error) {
	f.mu.Lock()
	a, ok := f.byID[id]
	if !ok {
		f.mu.Unlock()
		return -1, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	idx := slices.Index(f.items, a)
	f.items = slices.Delete(f.items, idx, idx+1)
	delete(f.byID, id)
	a.owner = nil
	f.mu.Unlock()

	f.notify(TopicRemoved, a, idx)
	return idx, a, nil
}

// Lookup returns the live annotation with the given identity.
func (f *File) Lookup(id uuid.UUID) (*Annotation, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	a, ok := f.byID[id]
	return a, ok
}

// Contains reports whether a is the live annotation held under its identity.
func (f *File) Contains(a *Annotation) bool {
	if a == nil {
		return false
	}
	live, ok := f.Lookup(a.id)
	return ok && live == a
}

// IndexOf returns the position of the annotation, or -1.
func (f *File) IndexOf(id uuid.UUID) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.IndexFunc(f.items, func(a *Annotation) bool { return a.id == id })
}

// FindByName returns the first annotation with the given name.
func (f *File) FindByName(name string) (*Annotation, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, a := range f.items {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Annotations returns the annotations in order.
func (f *File) Annotations() []*Annotation {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.items)
}

// Len returns the number of annotations.
func (f *File) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

// InGroup returns the annotations whose group key names the same group as key.
func (f *File) InGroup(key GroupKey) []*Annotation {
	return f.Filter(func(a *Annotation) bool { return a.Group.SameGroup(key) })
}

// Filter returns the annotations for which keep returns true, in order.
func (f *File) Filter(keep func(*Annotation) bool) []*Annotation {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*Annotation
	for _, a := range f.items {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (f *File) notify(topic event.Topic, a *Annotation, idx int) {
	if f.pub == nil {
		return
	}
	f.pub.Publish(topic, Change{File: f.name, Annotation: a, Index: idx})
}
