// Package fonts provides the font family that text is measured with, for
// embedding into SVG output.
//
// Text widths are computed with the Go fonts from golang.org/x/image. A
// viewer that draws the SVG with a different family can overflow item
// boxes; embedding the faces as @font-face rules makes the drawing match the
// measurement in browsers.
package fonts

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name the embedded faces are declared
// under.
const FontFamily = "Go"

// FallbackFontFamily is the font-family list for documents using the
// embedded faces.
const FallbackFontFamily = `Go, 'Helvetica Neue', Arial, sans-serif`

// RegularTTF returns the regular face as TrueType data.
func RegularTTF() []byte { return goregular.TTF }

// BoldTTF returns the bold face as TrueType data.
func BoldTTF() []byte { return gobold.TTF }

var (
	faceCSS     string
	faceCSSOnce sync.Once
)

// FaceCSS returns @font-face rules declaring both faces as base64 data
// URIs. The result is computed once.
func FaceCSS() string {
	faceCSSOnce.Do(func() {
		var b strings.Builder
		writeFace(&b, RegularTTF(), "normal")
		writeFace(&b, BoldTTF(), "bold")
		faceCSS = b.String()
	})
	return faceCSS
}

func writeFace(b *strings.Builder, ttf []byte, weight string) {
	fmt.Fprintf(b, "@font-face{font-family:'%s';font-weight:%s;src:url(data:font/ttf;base64,%s) format('truetype');}",
		FontFamily, weight, base64.StdEncoding.EncodeToString(ttf))
}
