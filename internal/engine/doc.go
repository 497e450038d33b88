// Package engine ties annotation files, the command history and the event
// bus together.
//
// Edits are made by configuring a command.Command, which applies the change
// immediately, and then handing it to Apply so it can be undone:
//
//	e := engine.New(engine.WithMergeWindow(time.Second))
//	scene, _ := e.NewFile("scene")
//	box := annotation.New(annotation.KindBox)
//
//	cmd := command.New()
//	if err := cmd.SetModeCreateAnnotation(scene, box); err != nil {
//		return err
//	}
//	if err := e.Apply(cmd); err != nil {
//		return err
//	}
//	_ = e.Undo()
//
// The engine also keeps the clipboard used by Copy, Cut and Paste.
//
// # Thread Safety
//
// Engine methods may be called from multiple goroutines. Commands mutate
// annotations while they are configured, so configuring a command and
// applying it should happen on the goroutine that owns the edit. Bus
// handlers run synchronously on the goroutine that made the change and may
// read the Engine, for example to refresh an undo menu.
package engine
