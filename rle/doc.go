// Package rle reads and writes Game of Life patterns in the Run Length
// Encoded text format.
//
// A document is made of optional comment lines starting with '#', an optional
// header line and a body of run tokens:
//
//	#N Glider
//	x = 3, y = 3, rule = B3/S23
//	bob$2bo$3o!
//
// Each token is an optional run count (default 1) followed by a tag: 'b' for
// dead cells, 'o' for living cells, '$' for the end of a row and '!' for the
// end of the pattern. Whitespace between tokens is ignored, as is anything
// after '!'.
//
// Decoding rejects a malformed document as a whole, it never returns a partial
// grid. When a decoded pattern is placed in a larger grid it is centered; odd
// padding puts the extra column on the right and the extra row at the bottom.
package rle
