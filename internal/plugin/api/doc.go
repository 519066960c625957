// Package api defines the contract between the editor host and extensions.
//
// An extension never touches editor internals. It sees the host through
// the Host interface and a document through TextEditor:
//
//   - Host: active editor lookup, command execution and registration,
//     keystroke interception, key bindings and event subscriptions.
//   - TextEditor: language id, line text, cursor position and a scoped
//     edit transaction.
//
// Every registration returns a Disposable. Extensions collect them in a
// Disposables sink that the extension host disposes on deactivation.
package api
