// Package plugin hosts editor extensions.
//
// An Extension is activated with a Context that gives it the host API, a
// logger scoped to the extension and a Disposables sink. Everything the
// extension registers through the host should be added to that sink: the
// Manager disposes it after the extension's Deactivate returns, or right
// away if activation fails.
//
// Lifecycle:
//
//	unloaded -> activating -> active -> deactivating -> unloaded
//	                 \                        \
//	                  -> error                 -> error
//
// Extensions in the error state may be activated again.
package plugin
