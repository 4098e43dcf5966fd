// Package npy encodes and decodes float64 tensors in the NumPy .npy v1.0
// format ('<f8', C order), the container numpy.load and
// reticulate::py$np$load read directly.
//
// Layout:
//
//	"\x93NUMPY" 0x01 0x00 <uint16 LE header len> <dict padded with ' '> '\n' <data>
//
// The dict is "{'descr': '<f8', 'fortran_order': False, 'shape': (R, M, M), }"
// and magic+len+dict+'\n' is padded to a multiple of 64 bytes.
//
// Encoder writes the header up front and then values in any number of
// chunks, so a tensor larger than memory can be streamed row by row.
package npy
