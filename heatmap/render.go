package heatmap

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/carbocation/pfx"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
)

const (
	cellWidth  = 72.0
	cellHeight = 36.0
	margin     = 14.0

	labelFontSize = 12.0
	cellFontSize  = 10.0

	borderWidth    = 1.0
	separatorWidth = 3.0
)

// Render draws the matrix as an annotated grid and returns the image. It has
// no I/O side effects; writing the artifact is SavePNG's job.
//
// Layout rules: each cell is individually bordered and annotated with its
// rounded ratio; a heavier line separates consecutive pairs (after every 2nd
// row); a translucent grey band covers every other pair block (rows 1-2, 5-6,
// ... 1-indexed); column labels are drawn rotated 90 degrees above the grid
// and row labels right-aligned beside it.
func (m *Matrix) Render() (image.Image, error) {
	nRows := len(m.RowLabels)
	nCols := len(m.ColLabels)
	if nRows == 0 || nCols == 0 {
		return nil, pfx.Err(fmt.Errorf("cannot render an empty matrix (%d rows, %d columns)", nRows, nCols))
	}

	labelFace, cellFace, err := fontFaces()
	if err != nil {
		return nil, err
	}

	g := m.layout(labelFace)
	left, top := g.left, g.top
	gridWidth, gridHeight := g.width, g.height

	dc := gg.NewContext(int(math.Ceil(left+gridWidth+margin)), int(math.Ceil(top+gridHeight+margin)))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Cell fills.
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			dc.SetRGB255(classColor(m.Classes[i][j]))
			dc.DrawRectangle(left+float64(j)*cellWidth, top+float64(i)*cellHeight, cellWidth, cellHeight)
			dc.Fill()
		}
	}

	// Per-cell borders and annotations.
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(borderWidth)
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			dc.DrawRectangle(left+float64(j)*cellWidth, top+float64(i)*cellHeight, cellWidth, cellHeight)
			dc.Stroke()
		}
	}
	dc.SetFontFace(cellFace)
	for i := 0; i < nRows; i++ {
		for j := 0; j < nCols; j++ {
			cx := left + (float64(j)+0.5)*cellWidth
			cy := top + (float64(i)+0.5)*cellHeight
			dc.DrawStringAnchored(fmt.Sprintf("%.2f", m.Values[i][j]), cx, cy, 0.5, 0.5)
		}
	}

	// Heavier separator after every pair, including the bottom edge.
	dc.SetLineWidth(separatorWidth)
	for r := 2; r <= nRows; r += 2 {
		y := top + float64(r)*cellHeight
		dc.DrawLine(left, y, left+gridWidth, y)
		dc.Stroke()
	}

	// Translucent band over every other pair block for visual grouping.
	for r := 0; r < nRows; r += 4 {
		bandRows := 2
		if r+bandRows > nRows {
			bandRows = nRows - r
		}
		dc.SetRGBA255(211, 211, 211, 51)
		dc.DrawRectangle(left, top+float64(r)*cellHeight, gridWidth, float64(bandRows)*cellHeight)
		dc.Fill()
	}

	// Axis labels.
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(labelFace)
	for i, label := range m.RowLabels {
		dc.DrawStringAnchored(label, left-margin, top+(float64(i)+0.5)*cellHeight, 1, 0.5)
	}
	for j, label := range m.ColLabels {
		cx := left + (float64(j)+0.5)*cellWidth
		baseY := top - margin
		dc.Push()
		dc.RotateAbout(-math.Pi/2, cx, baseY)
		dc.DrawStringAnchored(label, cx, baseY, 0, 0.5)
		dc.Pop()
	}

	return dc.Image(), nil
}

// fontFaces loads the label and cell annotation faces from the go-chart
// bundled font, so no font file path is needed at runtime.
func fontFaces() (label, cell font.Face, err error) {
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	return truetype.NewFace(f, &truetype.Options{Size: labelFontSize}),
		truetype.NewFace(f, &truetype.Options{Size: cellFontSize}), nil
}

// gridLayout places the cell grid within the image: margins are sized to the
// longest row and column labels.
type gridLayout struct {
	left, top     float64
	width, height float64
}

func (m *Matrix) layout(labelFace font.Face) gridLayout {
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(labelFace)

	maxRowLabel := 0.0
	for _, label := range m.RowLabels {
		if w, _ := measure.MeasureString(label); w > maxRowLabel {
			maxRowLabel = w
		}
	}
	maxColLabel := 0.0
	for _, label := range m.ColLabels {
		if w, _ := measure.MeasureString(label); w > maxColLabel {
			maxColLabel = w
		}
	}

	return gridLayout{
		left:   margin + maxRowLabel + margin,
		top:    margin + maxColLabel + margin,
		width:  float64(len(m.ColLabels)) * cellWidth,
		height: float64(len(m.RowLabels)) * cellHeight,
	}
}

func classColor(c Class) (r, g, b int) {
	switch c {
	case Loss:
		return 240, 128, 128 // light coral
	case Gain:
		return 173, 216, 230 // light blue
	}

	return 255, 255, 255
}

// SavePNG writes the rendered image, surfacing close errors so a run leaves
// either a complete artifact or a reported failure.
func SavePNG(img image.Image, outName string) error {
	f, err := os.Create(outName)
	if err != nil {
		return pfx.Err(fmt.Errorf("creating %s: %v", outName, err))
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return pfx.Err(fmt.Errorf("encoding %s: %v", outName, err))
	}

	if err := f.Close(); err != nil {
		return pfx.Err(fmt.Errorf("closing %s: %v", outName, err))
	}

	return nil
}
