// Package bullet recognizes unordered markdown list bullets.
//
// A bullet is one of the markers '-', '*' or '+' preceded only by
// whitespace and followed by at least one whitespace character:
//
//	"  * Lorem Ipsum"  -> prefix "  * "
//	"-  Lorem Ipsum"   -> prefix "-  "
//	"Lorem + Ipsum"    -> no prefix
//
// A blank bullet is a line made of nothing but such a prefix ("- ",
// "  * ", "-    "). A bare marker with no trailing whitespace ("-") is
// neither an item nor a blank bullet.
//
// Whitespace is Unicode whitespace, so "-\u00a0Lorem" is an item and
// "- \u3000" is blank.
//
// All functions are pure and safe for concurrent use.
package bullet
