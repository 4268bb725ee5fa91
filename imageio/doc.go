// Package imageio reads source maps into texconv buffers and writes
// synthesized outputs back to disk.
//
// Supported source formats are PNG, JPEG, BMP, TIFF, WebP and TGA. The
// format is detected from the file contents, not the extension, except for
// TGA which has no magic number and is tried last.
//
// Outputs are written as TGA (run-length encoded by default), PNG, BMP, TIFF
// or JPEG. A buffer whose alpha channel is fully opaque is written without
// alpha.
//
// Buffers are bottom-up (row 0 is the bottom row). Decode and ToImage flip
// rows when converting from and to the top-down image.Image convention.
package imageio
