package report

import (
	"bytes"
	"encoding/csv"
	"time"

	log "github.com/sirupsen/logrus"
)

type SummaryRenderer interface {
	RenderSummary(summary Summary) (string, error)
}

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

func (t *CsvSummaryRendererImpl) RenderSummary(summary Summary) (string, error) {
	data := [][]string{
		{"Range", summary.Range},
		{"Start", summary.Start.Format(time.RFC3339)},
		{"End", summary.End.Format(time.RFC3339)},
		{"Total quotation", summary.TotalQuotation.String()},
		{"Total expense", summary.TotalExpense.String()},
		{"Total expected expense", summary.TotalExpectedExpense.String()},
		{"Profit / loss", summary.ProfitLoss.String()},
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
