// Package config loads the YAML configuration of the footprint tool.
//
// A configuration overrides the default width table:
//
//	version: "1"
//	pointer: 8     # header of text and containers, width of chan/func/unsafe.Pointer
//	codeUnit: 2    # per UTF-16 code unit of text
//	widths:
//	  int: 8
//	  complex128: 16
//
// Keys of widths are Go type spellings (see primitive.ParseKind). The table is
// built once at start-up and stays constant for the life of the process.
package config
