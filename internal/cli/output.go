package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rinsh4dd/e-com/internal/apperror"
	"github.com/rinsh4dd/e-com/internal/models"
)

// table prints rows under header, tab separated and aligned.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// show prints v as JSON with --json and through human otherwise.
func (r *runner) show(cmd *cobra.Command, v any, human func(io.Writer) error) error {
	if r.asJSON {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	return human(cmd.OutOrStdout())
}

func money(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

func productRows(products []models.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}
		rows = append(rows, []string{p.ID.String(), p.Name, p.Brand, p.Category, money(p.Price), stock})
	}
	return rows
}

var productHeader = []string{"ID", "NAME", "BRAND", "CATEGORY", "PRICE", "STOCK"}

func orderRows(orders []models.Order) [][]string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			fmt.Sprint(o.ID), o.CreatedAt, fmt.Sprint(len(o.Items)),
			money(o.TotalAmount), o.PaymentMethod, string(o.PaymentStatus), string(o.OrderStatus),
		})
	}
	return rows
}

var orderHeader = []string{"ID", "PLACED", "ITEMS", "TOTAL", "PAYMENT", "PAID", "STATUS"}

// withDetails appends per-field validation messages to err.
func withDetails(err error) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return err
	}
	details, ok := appErr.Details.(map[string]string)
	if !ok || len(details) == 0 {
		return err
	}
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "\n  %s: %s", f, details[f])
	}
	return fmt.Errorf("%w%s", err, b.String())
}
