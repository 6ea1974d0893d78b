// Package platform defines the layout-service contract used by textrun.
//
// A layout service turns an attributed string into a Frame made of lines,
// each holding glyph runs. Runs expose the UTF-16 range they cover and an
// attribute set in which the font chosen by the service is stored.
//
// # Font ownership
//
// Fonts are reference counted. Two reference types keep the lifetimes
// apart:
//
//   - BorrowedFont: a view into a Frame. It is valid only while the Frame
//     is open and cannot be handed to a shaping engine.
//   - OwnedFont: an independent reference obtained by BorrowedFont.Extend
//     or Adopt. It stays valid until Release, which runs at most once.
//
// Example:
//
//	borrowed := run.Attributes()[key].(platform.BorrowedFont)
//	owned, err := borrowed.Extend()
//	if err != nil {
//	    return err
//	}
//	defer owned.Release()
//	frame.Close() // owned is still valid here
package platform
