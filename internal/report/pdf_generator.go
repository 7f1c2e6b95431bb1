package report

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)

	// Columns per table block; wider tables are split and repeat the
	// first column.
	pdfMaxColumns = 8
)

// pdfStyler holds reusable styling and state for PDF generation
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func() // map of style name to function that sets font, color etc.
	lineHeight  float64
	currentY    float64 // manually tracked Y position for flowing content
	pageHeight  float64
	contentTopY float64 // top Y after margin
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6,
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 8)
		s.pdf.SetFillColor(200, 200, 200) // Light grey
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 8)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	lines := s.pdf.SplitLines([]byte(text), pdfContentWidth)
	s.checkAddPage(float64(len(lines)) * s.lineHeight)

	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1 // small gap after paragraph
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width float64, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.ImageOptions(imageName, pdfMargin, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// writeTable renders headers/rows, splitting the columns into blocks of at
// most pdfMaxColumns. Every block after the first repeats column 0.
func (s *pdfStyler) writeTable(headers []string, rows [][]string) {
	for _, block := range columnBlocks(len(headers), pdfMaxColumns) {
		width := pdfContentWidth / float64(len(block))

		writeHeader := func() {
			s.applyStyle("tableHeader")
			x := pdfMargin
			for _, j := range block {
				s.pdf.SetXY(x, s.currentY)
				s.pdf.CellFormat(width, s.lineHeight, headers[j], "1", 0, "C", true, 0, "")
				x += width
			}
			s.currentY += s.lineHeight
		}

		s.checkAddPage(2 * s.lineHeight)
		writeHeader()
		for _, row := range rows {
			if s.currentY+s.lineHeight > s.pageHeight {
				s.newPage()
				writeHeader()
			}
			s.applyStyle("tableCell")
			x := pdfMargin
			for _, j := range block {
				s.pdf.SetXY(x, s.currentY)
				s.pdf.CellFormat(width, s.lineHeight, row[j], "1", 0, "R", false, 0, "")
				x += width
			}
			s.currentY += s.lineHeight
		}
		s.addSpacer(5)
	}
}

// columnBlocks partitions column indices 0..n-1 into groups of at most size
// entries, each group starting with column 0.
func columnBlocks(n, size int) [][]int {
	if n <= size {
		block := make([]int, n)
		for i := range block {
			block[i] = i
		}
		return [][]int{block}
	}
	var blocks [][]int
	for start := 1; start < n; start += size - 1 {
		end := int(math.Min(float64(start+size-1), float64(n)))
		block := []int{0}
		for j := start; j < end; j++ {
			block = append(block, j)
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// BuildPDFReport writes a landscape report of doc: heading, notes, the table
// and then one page per plot image, keyed by caption.
func BuildPDFReport(w io.Writer, doc *Document, plotImages map[string][]byte) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)
	title := doc.Title
	if title == "" {
		title = "Cosmology data report"
	}
	styler.writeParagraph(title, "h1", "C")
	styler.addSpacer(3)
	for _, note := range doc.Notes {
		styler.writeParagraph(note, "normal", "L")
	}
	styler.addSpacer(3)

	if doc.Table == nil {
		styler.writeParagraph("No results to display.", "normal", "L")
	} else {
		styler.writeTable(doc.Headers(), doc.Cells(shortFloat))
	}

	captions := make([]string, 0, len(plotImages))
	for caption := range plotImages {
		captions = append(captions, caption)
	}
	sort.Strings(captions)

	imgWidth := pdfContentWidth * 0.9
	imgHeight := imgWidth / 2
	for i, caption := range captions {
		img := plotImages[caption]
		if len(img) == 0 {
			log.Printf("Warning: plot '%s' is empty, skipping", caption)
			continue
		}
		styler.newPage()
		styler.writeParagraph("Graphical Analysis", "h2", "L")
		styler.addImage(img, fmt.Sprintf("plot%d", i), imgWidth, imgHeight, caption)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
