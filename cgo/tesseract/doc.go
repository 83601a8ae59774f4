// Package tesseract provides CGO bindings for the Tesseract OCR engine
// via gosseract. It implements the driven.OCREngine interface.
//
// Build requires:
//   - Tesseract development libraries (libtesseract, libleptonica)
//   - Install via: brew install tesseract (macOS) or
//     apt install libtesseract-dev libleptonica-dev (Linux)
package tesseract
