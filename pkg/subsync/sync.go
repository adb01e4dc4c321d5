package subsync

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"subsync/pkg/subsync/models"
	"subsync/pkg/subsync/sheet"
)

// Source yields the authoritative set of active subscribers.
type Source interface {
	FetchActiveSubscribers(ctx context.Context) ([]models.Subscriber, error)
}

// sidecarNote points operators at the attachment convention honored by the
// downstream sender. The image file itself is never created or read here.
const sidecarNote = "an image is attached by the sender when DDMMYYYY.(png/jpg/jpeg) exists in the same folder"

// Run synchronizes the subscriber directory into the workbook for one date.
//
// It resolves the workbook path (the _A variant wins when present), validates
// the column schema, honors the only-WhatsApp gate, filters the fetched
// subscribers against the phones already in the sheet, appends one row per
// new subscriber in fetch order, and saves. All row mutation happens in
// memory; the workbook is written once at the end and never in dry-run mode,
// so an aborted run leaves the file untouched.
func Run(ctx context.Context, src Source, opts Options, logger *zap.Logger) (*models.Result, error) {
	path := sheet.ResolvePath(opts.Folder, opts.Date)

	h, err := sheet.Open(path)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	if err := sheet.EnsureExpectedHeaders(h.Headers()); err != nil {
		return nil, err
	}

	template, err := h.TemplateValues(opts.TemplateRow)
	if err != nil {
		return nil, err
	}

	messageText := template["TEXTO_MENSAJE"]
	if opts.Message != nil {
		messageText = *opts.Message
	}

	if opts.OnlyWhatsApp {
		flag := strings.ToUpper(strings.TrimSpace(template["WHATSAPP"]))
		if flag != "SI" && flag != "SÍ" {
			logger.Info("template row not marked for WhatsApp, skipping",
				zap.String("excel", path),
				zap.String("whatsapp", flag))
			return &models.Result{
				Excel:   path,
				Skipped: true,
				Reason:  fmt.Sprintf("template WHATSAPP=%q (expected SI)", flag),
			}, nil
		}
	}

	subs, err := src.FetchActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := h.ExistingPhones()
	if err != nil {
		return nil, err
	}

	// add-list keeps the source's fetch order so row order stays deterministic
	var toAdd []models.Subscriber
	for _, s := range subs {
		if s.Phone == "" {
			continue
		}
		if _, ok := existing[s.Phone]; ok {
			continue
		}
		toAdd = append(toAdd, s)
	}

	result := &models.Result{
		Excel:             path,
		ActiveSubscribers: len(subs),
		ExistingInExcel:   len(existing),
		Added:             len(toAdd),
	}

	if len(toAdd) == 0 {
		logger.Info("no new subscribers",
			zap.String("excel", path),
			zap.Int("active", len(subs)),
			zap.Int("existing", len(existing)))
		return result, nil
	}

	for _, s := range toAdd {
		if _, err := h.AppendSubscriber(template, s, messageText, opts.DefaultSMS); err != nil {
			return nil, fmt.Errorf("append row for %s: %w", s.Phone, err)
		}
	}
	result.Note = sidecarNote

	if opts.DryRun {
		logger.Info("dry run, workbook not saved",
			zap.String("excel", path),
			zap.Int("added", len(toAdd)))
		return result, nil
	}

	if err := h.Save(); err != nil {
		return nil, fmt.Errorf("save %s: %w", path, err)
	}
	logger.Info("workbook updated",
		zap.String("excel", path),
		zap.Int("added", len(toAdd)))
	return result, nil
}
