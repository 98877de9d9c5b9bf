package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Spreadsheets configured for es-ES expect semicolons and comma decimals.
const csvSeparator = ';'

var csvHeader = []string{"Fecha", "Usuario", "Acción", "Entidad", "Registro", "Detalle", "Datos"}

// WriteCSV renders the entries as a CSV for the compliance export.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	cw.Comma = csvSeparator
	printer := message.NewPrinter(language.EuropeanSpanish)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("audit: write csv header: %w", err)
	}
	for _, e := range entries {
		actor := e.ActorUsername
		if actor == "" {
			actor = printer.Sprintf("%d", e.ActorID)
		}
		record := []string{
			e.OccurredAt.Format("02/01/2006 15:04:05"),
			actor,
			e.Action,
			e.Entity,
			e.EntityID,
			e.Detail,
			formatMeta(printer, e.Meta),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("audit: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMeta(printer *message.Printer, meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := meta[k].(type) {
		case float64:
			parts = append(parts, printer.Sprintf("%s=%.2f", k, v))
		case int, int64:
			parts = append(parts, printer.Sprintf("%s=%d", k, v))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(parts, " ")
}
