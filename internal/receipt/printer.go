package receipt

import (
	"context"
	"fmt"
	"io"
	"sync"

	"kiosk/internal/model"

	"github.com/rs/zerolog"
)

// Printer sends formatted receipt text to a physical or virtual device.
// Retry policy, if any, belongs to the implementation or its caller.
type Printer interface {
	Print(ctx context.Context, receipt string) error
}

// writerPrinter writes receipts to an io.Writer such as a spool file or a
// character device.
type writerPrinter struct {
	mu     sync.Mutex
	w      io.Writer
	logger zerolog.Logger
}

// NewWriterPrinter creates a printer that writes each receipt to w.
func NewWriterPrinter(w io.Writer, logger zerolog.Logger) Printer {
	return &writerPrinter{
		w:      w,
		logger: logger.With().Str("component", "receipt-printer").Logger(),
	}
}

// Print writes the receipt in one call.
func (p *writerPrinter) Print(ctx context.Context, receipt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	n, err := io.WriteString(p.w, receipt)
	if err != nil {
		p.logger.Error().Err(err).Int("written", n).Msg("failed to write receipt")
		return fmt.Errorf("failed to write receipt: %w", err)
	}

	p.logger.Debug().Int("bytes", n).Msg("receipt printed")
	return nil
}

// disabledPrinter reports that no printer is attached.
type disabledPrinter struct{}

// NewDisabledPrinter returns a printer that always fails with ErrPrinterUnavailable.
func NewDisabledPrinter() Printer {
	return disabledPrinter{}
}

func (disabledPrinter) Print(context.Context, string) error {
	return model.ErrPrinterUnavailable
}
