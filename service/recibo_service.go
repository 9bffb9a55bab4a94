package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"inmobiliaria-api/amortizacion"
	"inmobiliaria-api/models"
	"inmobiliaria-api/utils"
)

// ReciboServiceInterface defines the contract for payment receipt generation
type ReciboServiceInterface interface {
	GenerarRecibo(ctx context.Context, pago *models.Pago, contrato *models.ContratoDetalle) ([]byte, error)
}

// ReciboService renders payment receipts as PDF documents.
type ReciboService struct {
	empresa string
}

// NewReciboService creates a new ReciboService
func NewReciboService() *ReciboService {
	empresa := os.Getenv("EMPRESA_NOMBRE")
	if empresa == "" {
		empresa = "Inmobiliaria"
	}
	return &ReciboService{empresa: empresa}
}

// Ensure ReciboService implements ReciboServiceInterface
var _ ReciboServiceInterface = (*ReciboService)(nil)

func detectChromePath() string {
	// Check environment variable first
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	// Common paths to check
	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// renderHTML renders the receipt template with payment and contract data
func (s *ReciboService) renderHTML(pago *models.Pago, contrato *models.ContratoDetalle) (string, error) {
	cliente := strings.TrimSpace(fmt.Sprintf("%s %s %s",
		contrato.ClienteNombre, contrato.ApellidoPaterno, contrato.ApellidoMaterno))
	mensualidad := amortizacion.Mensualidad(contrato.PrecioTotal, contrato.Enganche, contrato.PlazoMeses)

	templateData := struct {
		Empresa     string
		Folio       string
		Fecha       string
		Cliente     string
		Lote        string
		NumeroPago  int
		PlazoMeses  int
		Monto       string
		MetodoPago  string
		FechaPago   string
		PrecioTotal string
		Enganche    string
		Mensualidad string
	}{
		Empresa:     s.empresa,
		Folio:       fmt.Sprintf("R-%06d", pago.IDPago),
		Fecha:       time.Now().Format("02/01/2006"),
		Cliente:     cliente,
		Lote:        fmt.Sprintf("%s %s", contrato.LoteTipo, contrato.NumLote),
		NumeroPago:  pago.NumeroPago,
		PlazoMeses:  contrato.PlazoMeses,
		Monto:       utils.FormatMXN(pago.Monto),
		MetodoPago:  pago.MetodoPago,
		FechaPago:   pago.FechaPago,
		PrecioTotal: utils.FormatMXN(contrato.PrecioTotal),
		Enganche:    utils.FormatMXN(contrato.Enganche),
		Mensualidad: utils.FormatMXN(mensualidad),
	}

	// Load template
	templatePath := filepath.Join("templates", "recibo.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	// Render template
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// GenerarRecibo renders the receipt template and prints it to PDF using chromedp
func (s *ReciboService) GenerarRecibo(ctx context.Context, pago *models.Pago, contrato *models.ContratoDetalle) ([]byte, error) {
	htmlContent, err := s.renderHTML(pago, contrato)
	if err != nil {
		return nil, err
	}

	// Create context with timeout (30 seconds)
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Detect Chrome/Chromium path and configure chromedp
	chromePath := detectChromePath()
	var allocCtx context.Context
	var allocCancel context.CancelFunc

	if chromePath != "" {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromePath),
			chromedp.NoSandbox, // Required for running in Docker/containers
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
		defer allocCancel()
	} else {
		// Let chromedp auto-detect (may fail in containers)
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.NoSandbox,
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
		defer allocCancel()
	}

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	// The receipt is self-contained, so we navigate to a data URL instead
	// of serving a render endpoint.
	dataURL := "data:text/html;charset=utf-8," + url.PathEscape(htmlContent)

	var pdfBuf []byte

	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// Letter size: 8.5" x 11"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
