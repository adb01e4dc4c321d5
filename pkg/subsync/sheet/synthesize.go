package sheet

import (
	"fmt"

	"subsync/pkg/subsync/models"
)

// AppendSubscriber synthesizes a new row for sub at MaxRow()+1 and returns
// the row index it was written to.
//
// The row is seeded with every template value whose column exists in the
// sheet, then the subscriber-identity columns are overridden: NOMBRES,
// APELLIDO_PATERNO/APELLIDO_MATERNO (last-name split), CELULAR, MAIL.
// CORREO and WHATSAPP keep the template's values, falling back to "NO" and
// "SI" when the template cell is empty. SMS takes defaultSMS and
// TEXTO_MENSAJE takes messageText.
func (h *Handle) AppendSubscriber(template map[string]string, sub models.Subscriber, messageText string, defaultSMS int) (int, error) {
	next := h.maxRow + 1

	for _, col := range h.headers {
		if col == "" {
			continue
		}
		v, ok := template[col]
		if !ok {
			continue
		}
		if err := h.SetCell(next, col, v); err != nil {
			return 0, fmt.Errorf("seed row %d: %w", next, err)
		}
	}

	paternal, maternal := models.SplitLastName(sub.LastName)

	correo := template["CORREO"]
	if correo == "" {
		correo = "NO"
	}
	whatsapp := template["WHATSAPP"]
	if whatsapp == "" {
		whatsapp = "SI"
	}

	overrides := []struct {
		column string
		value  interface{}
	}{
		{"NOMBRES", sub.FirstName},
		{"APELLIDO_PATERNO", paternal},
		{"APELLIDO_MATERNO", maternal},
		{"CELULAR", sub.Phone},
		{"MAIL", sub.Email},
		{"CORREO", correo},
		{"WHATSAPP", whatsapp},
		{"SMS", defaultSMS},
		{"TEXTO_MENSAJE", messageText},
	}
	for _, o := range overrides {
		if err := h.SetCell(next, o.column, o.value); err != nil {
			return 0, fmt.Errorf("row %d: %w", next, err)
		}
	}

	return next, nil
}
