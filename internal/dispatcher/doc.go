// Package dispatcher routes named commands and keystrokes to their handlers.
//
// Commands are plain functions registered by name in a Registry. Keystrokes
// go through Type: every registered keystroke hook (see package hook) runs
// first and may modify the keystroke or suppress it; if nothing suppresses
// it, the keystroke is handed to the "default:type" command.
//
// Built-in command names:
//
//	type          run keystroke hooks, then default:type
//	default:type  insert text at the cursor without interception
//	deleteLeft    delete the character left of the cursor
package dispatcher
