// Package probe reads image headers to report dimensions without decoding
// pixel data. PNG and JPEG are recognized.
package probe
