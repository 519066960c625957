// Package script replays editing scenarios written in Lua against a
// workspace.
//
// Scripts require the "ks" module, which drives the workspace the way a user
// would:
//
//	local ks = require("ks")
//	ks.open("- Lorem Ipsum", "markdown")
//	ks.key("enter")
//	ks.expect(ks.line(2), "- ")
//
// Lines are 1-based. Columns are byte offsets into the line; an omitted
// column means the end of the line. Any failing call raises a Lua error,
// which the Runner returns.
package script
