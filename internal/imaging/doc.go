// Package imaging owns the re-encode policy for storefront images: header
// probing, the downscale factor, and the per-format encode rules. Actual
// pixel work is delegated, either to the Go decoders plus
// golang.org/x/image resampling and the cwebp/jpegtran helpers ([Native]),
// or to the ImageMagick CLI ([Magick]).
//
// Both engines satisfy [Codec], which is all the optimizer sees, so the
// decision logic can be tested with a fake.
package imaging
