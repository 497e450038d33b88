// Package annotation provides the editable annotation model that the undo
// engine operates on.
//
// # Annotations
//
// An Annotation is a shape, text label, image, color bar or browser tab
// placed in one of several coordinate spaces. Every annotation carries a
// stable identity (a UUID) assigned when it is created. Clone keeps the
// identity so a snapshot always describes the object it was taken from;
// Duplicate assigns a fresh identity for paste and duplicate operations.
//
// One-dimensional annotations (lines) are positioned by a start and an end
// coordinate. Two-dimensional annotations are positioned by a single center
// coordinate plus width, height and rotation.
//
// # Files
//
// A File is an ordered collection of live annotations. Adding an annotation
// to a file makes the file its owner; removing it clears the owner. Owners
// let callers find where an annotation lives and let snapshot holders detect
// references that went stale.
//
//	f := annotation.NewFile("scene", nil)
//	box := annotation.New(annotation.KindBox)
//	if _, err := f.Add(box); err != nil {
//	    return err
//	}
package annotation
