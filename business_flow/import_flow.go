package businessflow

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/telshop/phone-catalog/app/dto"
	"github.com/telshop/phone-catalog/repository"
)

// Import outcome counters, partitioned the same way as the summary
var importRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_import_rows_total",
		Help: "Total number of import rows processed, by outcome",
	},
	[]string{"outcome"},
)

// ImportFlow drives a CSV source of phone rows through validation and
// into the catalog, one row at a time, in source order.
type ImportFlow interface {
	ImportFile(ctx context.Context, path string, clearFirst bool) (*dto.ImportSummary, error)
	Import(ctx context.Context, source io.Reader, clearFirst bool) (*dto.ImportSummary, error)
}

// ImportFlowImpl implements ImportFlow
type ImportFlowImpl struct {
	phoneRepo repository.PhoneRepository
	validator *RowValidator
}

// NewImportFlow creates a new import flow
func NewImportFlow(phoneRepo repository.PhoneRepository) ImportFlow {
	return &ImportFlowImpl{
		phoneRepo: phoneRepo,
		validator: NewRowValidator(),
	}
}

// ImportFile opens the source path and runs the import. A path that
// cannot be opened is a SourceError: fatal, reported once, nothing
// processed.
func (f *ImportFlowImpl) ImportFile(ctx context.Context, path string, clearFirst bool) (*dto.ImportSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	defer file.Close()

	return f.Import(ctx, file, clearFirst)
}

// Import processes the source row by row. Row-level failures are
// counted and logged but never abort the batch; only an unreadable
// source or a header missing required columns stops the import, and
// both do so before any row is processed.
func (f *ImportFlowImpl) Import(ctx context.Context, source io.Reader, clearFirst bool) (*dto.ImportSummary, error) {
	if clearFirst {
		log.Println("Clearing existing phone data...")
		if err := f.phoneRepo.DeleteAll(ctx); err != nil {
			return nil, NewBusinessError("CLEAR_PHONES_FAILED", "failed to clear existing phone data", err)
		}
		log.Println("Existing phone data cleared.")
	}

	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1 // rows narrower than the header lose trailing columns, wider rows keep extras ignored

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &SourceError{Err: ErrEmptySource}
		}
		return nil, &SourceError{Err: err}
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{Missing: missing, Found: header}
	}

	summary := &dto.ImportSummary{}
	rowNumber := 0 // first data row after the header is row 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++

		if err != nil {
			log.Printf("Row %d: skipping malformed line: %v", rowNumber, err)
			f.skip(summary)
			continue
		}

		row := make(map[string]string, len(columns))
		for name, idx := range columns {
			if idx < len(record) {
				row[name] = record[idx]
			}
		}

		candidate, rejection := f.validator.ValidateRow(row)
		if rejection != nil {
			log.Printf("Row %d: skipping due to %s. Row: %v", rowNumber, rejection, record)
			f.skip(summary)
			continue
		}

		phone, created, err := f.phoneRepo.Upsert(ctx, candidate.Name, candidate.Fields)
		if err != nil {
			// A single bad row never aborts the whole import.
			log.Printf("Row %d: error processing row %v: %v", rowNumber, record, err)
			f.skip(summary)
			continue
		}

		if created {
			summary.Created++
			importRowsTotal.WithLabelValues("created").Inc()
			log.Printf("Created: %s (slug: %s)", phone.Name, phone.Slug)
		} else {
			summary.Updated++
			importRowsTotal.WithLabelValues("updated").Inc()
			log.Printf("Updated: %s (slug: %s)", phone.Name, phone.Slug)
		}
	}

	log.Printf("Import finished: %d created, %d updated, %d skipped", summary.Created, summary.Updated, summary.Skipped)
	return summary, nil
}

func (f *ImportFlowImpl) skip(summary *dto.ImportSummary) {
	summary.Skipped++
	importRowsTotal.WithLabelValues("skipped").Inc()
}
