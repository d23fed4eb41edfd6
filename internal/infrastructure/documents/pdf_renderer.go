package documents

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"github.com/careroute/referral-agent/internal/domain/entities"
	"github.com/careroute/referral-agent/pkg/textutil"
)

const (
	pageTextWidth = 500.0
	fontName      = "DejaVu"
)

// defaultFontPaths are tried in order; the first TTF that loads wins.
var defaultFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

// PDFRenderer renders referral recommendations into a printable referral
// form. A renderer failure returns an error; the pipeline dispatches
// without the form in that case.
type PDFRenderer struct {
	fontPaths []string
}

// NewPDFRenderer creates a renderer using the standard system font paths.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{fontPaths: defaultFontPaths}
}

// NewPDFRendererWithFonts creates a renderer with explicit font paths.
func NewPDFRendererWithFonts(fontPaths []string) *PDFRenderer {
	return &PDFRenderer{fontPaths: fontPaths}
}

// RenderReferralForm renders the recommendation as a one-page referral
// form and returns the PDF bytes plus a stable filename.
func (r *PDFRenderer) RenderReferralForm(_ context.Context, rec entities.ReferralRecommendation) ([]byte, string, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range r.fontPaths {
		if err := pdf.AddTTFFont(fontName, path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, "", fmt.Errorf("failed to load referral form font: %w", fontErr)
	}

	if err := pdf.SetFont(fontName, "", 18); err != nil {
		return nil, "", err
	}
	pdf.Cell(nil, "MEDICAL REFERRAL FORM")
	pdf.Br(22)

	if err := pdf.SetFont(fontName, "", 10); err != nil {
		return nil, "", err
	}
	pdf.Cell(nil, fmt.Sprintf("Generated: %s    Reference: %s", time.Now().Format("January 2, 2006"), rec.ID))
	pdf.Br(24)

	sections := []struct {
		title string
		rows  []string
	}{
		{"PATIENT INFORMATION", []string{
			"Name: " + rec.PatientName,
			"Date of Birth: " + orDash(rec.DateOfBirth),
			"Age: " + formatAge(rec.Age),
			"Sex: " + orDash(textutil.TitleCase(string(rec.Sex))),
			"Chief Complaint: " + orDash(rec.ChiefComplaint),
		}},
		{"REFERRED TO", []string{
			"Specialist: " + rec.Specialist.Name,
			"Specialty: " + textutil.TitleCase(string(rec.Specialty)),
			"NPI: " + rec.Specialist.LicenseID,
			"Facility: " + rec.Specialist.Affiliation,
			"Address: " + rec.Specialist.Address,
		}},
		{"INSURANCE", []string{
			"Plan: " + rec.Insurance.PlanID,
			"Coverage: " + string(rec.Insurance.Status),
			"Copay: " + rec.Insurance.Copay,
			"Deductible: " + orDash(rec.Insurance.Deductible),
		}},
		{"BILLING CODES", []string{
			"Procedure (CPT): " + joinCodes(rec.ProcedureCodes),
			"Diagnosis (ICD-10): " + joinCodes(rec.DiagnosisCodes),
		}},
	}

	for _, section := range sections {
		if err := r.writeSection(&pdf, section.title, section.rows); err != nil {
			return nil, "", err
		}
	}

	if err := r.writeSection(&pdf, "CLINICAL NOTES", nil); err != nil {
		return nil, "", err
	}
	if err := r.writeWrapped(&pdf, rec.ClinicalNarrative); err != nil {
		return nil, "", err
	}
	if rec.PredictiveAlert != "" {
		pdf.Br(8)
		if err := r.writeSection(&pdf, "CLINICAL ALERT", nil); err != nil {
			return nil, "", err
		}
		if err := r.writeWrapped(&pdf, rec.PredictiveAlert); err != nil {
			return nil, "", err
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write referral form: %w", err)
	}

	return buf.Bytes(), referralFilename(rec.ID), nil
}

func (r *PDFRenderer) writeSection(pdf *gopdf.GoPdf, title string, rows []string) error {
	if err := pdf.SetFont(fontName, "", 13); err != nil {
		return err
	}
	pdf.Cell(nil, title)
	pdf.Br(16)

	if err := pdf.SetFont(fontName, "", 11); err != nil {
		return err
	}
	for _, row := range rows {
		lines, _ := pdf.SplitText(row, pageTextWidth)
		for _, line := range lines {
			pdf.Cell(nil, line)
			pdf.Br(13)
		}
	}
	if len(rows) > 0 {
		pdf.Br(8)
	}
	return nil
}

func (r *PDFRenderer) writeWrapped(pdf *gopdf.GoPdf, text string) error {
	if err := pdf.SetFont(fontName, "", 11); err != nil {
		return err
	}
	lines, _ := pdf.SplitText(text, pageTextWidth)
	for _, line := range lines {
		pdf.Cell(nil, line)
		pdf.Br(13)
	}
	return nil
}

func referralFilename(id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("medical_referral_%s.pdf", short)
}

func orDash(value string) string {
	if value == "" {
		return "Not provided"
	}
	return value
}

func formatAge(age int) string {
	if age <= 0 {
		return "Not provided"
	}
	return fmt.Sprintf("%d", age)
}

func joinCodes(codes []entities.CodeEntry) string {
	if len(codes) == 0 {
		return "None on file"
	}
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, c.Code)
	}
	return strings.Join(parts, ", ")
}
