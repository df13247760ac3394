// Copyright © 2021 Optable Technologies Inc. All rights reserved.
// See LICENSE for details.
package unit

// Plain integer multiples for callers working with int64 quantities. Prefixes
// beyond exa do not fit in an int64; use the Prefix registry (KiB, MB, ...)
// for those and for anything that needs a name or a symbol.
const (
	Byte = 1

	// The binary (IEC) prefix are powers of 1024.
	Kibibyte = Byte * 1024
	Mebibyte = Kibibyte * 1024
	Gibibyte = Mebibyte * 1024
	Tebibyte = Gibibyte * 1024
	Pebibyte = Tebibyte * 1024
	Exbibyte = Pebibyte * 1024

	// The decimal (SI) prefix are powers of 1000.
	Kilobyte = Byte * 1000
	Megabyte = Kilobyte * 1000
	Gigabyte = Megabyte * 1000
	Terabyte = Gigabyte * 1000
	Petabyte = Terabyte * 1000
	Exabyte  = Petabyte * 1000
)
