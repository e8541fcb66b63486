package rowset

import (
	"github.com/tidwall/gjson"

	"carbonfront/internal/domain"
)

// fieldSource maps an output column to a path inside a source object.
type fieldSource struct {
	column string
	path   string
}

var metadataFields = []fieldSource{
	{"timestamp", "timestamp"},
	{"file_path", "file_path"},
	{"status_code", "status_code"},
	{"elapsed_time", "elapsed_time"},
}

var invoiceFields = []fieldSource{
	{"invoice_name", "invoice_name"},
	{"supplier", "supplier"},
	{"total_cost", "total_cost"},
}

var emissionFields = []fieldSource{
	{"item_name", "name"},
	{"item_description", "description"},
	{"consumption", "consumption"},
	{"consumption_unit", "consumptionUnit"},
	{"usages", "usages"},
	{"usage_unit", "usageUnit"},
	{"scope", "scope"},
	{"tag_name", "tagName"},
	{"unit_conversion", "unitConversionFromItemToFactor"},
	{"weight_confidence", "weightConfidence"},
	{"tco2", "tco2"},
}

var factorFields = []fieldSource{
	{"factor_id", "id"},
	{"factor_name", "name"},
	{"factor_description", "description"},
	{"factor_co2", "co2"},
	{"factor_co2_unit", "co2_unit"},
	{"factor_unit_index", "unit_index"},
	{"factor_category_index", "category_index"},
	{"factor_standard_index", "standard_index"},
	{"factor_standard_name", "standard_name"},
	{"factor_output_unit", "output_unit"},
	{"factor_type_index", "factor_type_index"},
	{"factor_confidence", "factorConfidence"},
}

// EmissionColumns lists the flattened columns produced for an emission
// envelope, in output order.
var EmissionColumns = func() []string {
	var cols []string
	for _, group := range [][]fieldSource{metadataFields, invoiceFields, {{"methodology", "methodology"}}, emissionFields, factorFields} {
		for _, f := range group {
			cols = append(cols, f.column)
		}
	}
	return cols
}()

// collectionFields are checked in order on plain objects.
var collectionFields = []string{"data", "results", "items"}

// Parse classifies and normalizes a raw response body in one step.
func Parse(body []byte) (RowSet, error) {
	resp, err := Classify(body)
	if err != nil {
		return nil, err
	}
	return Normalize(resp)
}

// Normalize extracts a non-empty row set from a classified response.
func Normalize(resp Response) (RowSet, error) {
	var rows RowSet

	switch r := resp.(type) {
	case EnvelopeResponse:
		flat, err := flattenEnvelope(r.Root)
		if err != nil {
			return nil, err
		}
		rows = flat
	case EncodedResponse:
		if !gjson.Valid(r.Text) {
			return nil, domain.ErrTextInsteadOfJSON
		}
		inner := gjson.Parse(r.Text)
		switch {
		case inner.IsArray():
			rows = rowsFromArray(inner)
		case inner.IsObject():
			rows = RowSet{rowFromObject(inner)}
		default:
			return nil, domain.ErrTextInsteadOfJSON
		}
	case ArrayResponse:
		rows = rowsFromArray(r.Items)
	case ObjectResponse:
		rows = fromObject(r.Object)
	default:
		return nil, domain.ErrInvalidResponseFormat
	}

	if len(rows) == 0 {
		return nil, domain.ErrNoDataReturned
	}
	if rows[0].Len() == 0 {
		return nil, domain.ErrNoColumnsFound
	}
	return rows, nil
}

func fromObject(obj gjson.Result) RowSet {
	for _, field := range collectionFields {
		if v := obj.Get(gjson.Escape(field)); v.IsArray() {
			return rowsFromArray(v)
		}
	}
	return RowSet{rowFromObject(obj)}
}

func flattenEnvelope(root gjson.Result) (RowSet, error) {
	result := root.Get("data.result")
	calcs := result.Get("emission_calculations")
	if !calcs.IsArray() || len(calcs.Array()) == 0 {
		return nil, domain.ErrNoEmissionCalculations
	}

	metadata := root.Get("data._metadata")
	invoice := result.Get("formatted_result")
	methodology := stringOrEmpty(result.Get("methodology"))

	items := calcs.Array()
	rows := make(RowSet, 0, len(items))
	for _, emission := range items {
		row := NewRow(len(EmissionColumns))
		setFields(&row, metadata, metadataFields)
		setFields(&row, invoice, invoiceFields)
		row.Set("methodology", methodology)
		setFields(&row, emission, emissionFields)
		setFields(&row, emission.Get("factor"), factorFields)
		rows = append(rows, row)
	}
	return rows, nil
}

func setFields(row *Row, src gjson.Result, fields []fieldSource) {
	for _, f := range fields {
		row.Set(f.column, stringOrEmpty(src.Get(gjson.Escape(f.path))))
	}
}

// stringOrEmpty returns "" for absent or null values and the decoded value
// otherwise.
func stringOrEmpty(r gjson.Result) any {
	if !r.Exists() || r.Type == gjson.Null {
		return ""
	}
	return valueOf(r)
}
