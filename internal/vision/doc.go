// Package vision holds the image-processing primitives the analysis engine
// consumes: intensity and colour-space conversions, edge detection and
// gradient magnitude. Outputs follow the OpenCV 8-bit conventions (L* and
// HSV rescaled to bytes, H in [0,180)) so scores stay comparable with
// results produced by OpenCV-based pipelines.
//
// Built with the opencv tag the primitives run on gocv. Without it they fall
// back to pure Go on go-colorful and x/image, with the same API and results.
package vision
