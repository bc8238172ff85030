// Package app is the composition root for the battery approximator.
//
// Run wires the pieces together in a fixed order:
//
//  1. config.Load reads (or creates) setting.ini
//  2. cache.New opens the last-saved start time store
//  3. source.NewResolver combines the boot clock, the cache and the wall clock
//  4. ui.Run shows the menu and blocks until the user quits
//
// A settings error does not stop Run early. It is handed to the UI, which
// shows it and waits for Enter, and is then returned to the caller.
package app
