package service

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/Mikefromtheback/plagiat-check/domain"
)

// CompareFormatterImpl implements the CompareOutputFormatter interface
type CompareFormatterImpl struct{}

// NewCompareFormatter creates a new compare output formatter
func NewCompareFormatter() *CompareFormatterImpl {
	return &CompareFormatterImpl{}
}

// Format formats the compare response according to the specified format
func (f *CompareFormatterImpl) Format(response *domain.CompareResponse, format domain.OutputFormat) (string, error) {
	var sb strings.Builder
	if err := f.Write(response, format, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes the formatted output to the writer
func (f *CompareFormatterImpl) Write(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewOutputError("no comparison result to write", nil)
	}

	switch format {
	case domain.OutputFormatText, "":
		return f.writeText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeCSV(response, writer)
	case domain.OutputFormatTable:
		return f.writeTable(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeText prints one score per line, line i belonging to pair i
func (f *CompareFormatterImpl) writeText(response *domain.CompareResponse, writer io.Writer) error {
	var sb strings.Builder
	for _, r := range response.Results {
		sb.WriteString(FormatResultScore(r))
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(writer, sb.String()); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func (f *CompareFormatterImpl) writeCSV(response *domain.CompareResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)

	header := []string{"line", "path_a", "path_b", "score", "distance", "length_a", "length_b", "error"}
	if err := w.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	for _, r := range response.Results {
		record := []string{
			strconv.Itoa(r.Line),
			r.PathA,
			r.PathB,
			FormatResultScore(r),
			strconv.Itoa(r.Distance),
			strconv.Itoa(r.LengthA),
			strconv.Itoa(r.LengthB),
			r.Error,
		}
		if err := w.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return domain.NewOutputError("failed to flush CSV", err)
	}
	return nil
}

func (f *CompareFormatterImpl) writeTable(response *domain.CompareResponse, writer io.Writer) error {
	var sb strings.Builder

	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Line", "File A", "File B", "Score", "Distance"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, r := range response.Results {
		distance := strconv.Itoa(r.Distance)
		if r.Failed() {
			distance = "-"
		}
		table.Append([]string{strconv.Itoa(r.Line), r.PathA, r.PathB, FormatResultScore(r), distance})
	}

	table.SetFooter([]string{
		"",
		"Compared " + strconv.Itoa(response.Summary.Compared),
		"Failed " + strconv.Itoa(response.Summary.Failed),
		"",
		"",
	})

	table.Render()

	if _, err := io.WriteString(writer, sb.String()); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// FormatCanonicalForms prints canonical strings. A single form is printed
// bare; several are each preceded by a "# path" header line.
func FormatCanonicalForms(forms []*domain.CanonicalForm, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, forms)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, forms)
	case domain.OutputFormatText, "":
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}

	var sb strings.Builder
	for i, form := range forms {
		if len(forms) > 1 {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString("# " + form.Path + "\n")
		}
		sb.WriteString(form.Canonical)
		sb.WriteByte('\n')
	}
	if _, err := io.WriteString(writer, sb.String()); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}
