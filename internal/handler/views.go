package handler

import (
	"html/template"

	"carbonfront/internal/columns"
	"carbonfront/internal/csvexport"
	"carbonfront/internal/domain"
	"carbonfront/internal/rowset"
	"carbonfront/internal/session"
)

// previewRows caps the rows shown under the column editor.
const previewRows = 10

type pageData struct {
	Title   string
	Intro   template.HTML
	Help    template.HTML
	MaxSize string
	State   interface{}
}

type methodologyField struct {
	Options  []domain.Methodology
	Selected domain.Methodology
	Loading  bool
}

type singleView struct {
	MethodologyField methodologyField
	File             *domain.FileInfo
	Loading          bool
	Error            string
	HasResult        bool
	Columns          []columns.Column
	SelectedCount    int
	Summary          *rowset.Summary
	PreviewHeaders   []string
	Preview          [][]string
	TotalRows        int
}

type bulkView struct {
	MethodologyField methodologyField
	File             *domain.FileInfo
	Loading          bool
	Error            string
	Success          bool
	Stats            domain.BulkStats
	Downloadable     bool
	ResultName       string
}

func newSingleView(st *session.SingleState) singleView {
	v := singleView{
		MethodologyField: methodologyField{Options: domain.Methodologies, Selected: st.Methodology, Loading: st.Loading},
		File:             st.File,
		Loading:          st.Loading,
		Error:            st.Error,
		HasResult:        st.HasResult(),
		Summary:          st.Summary,
		TotalRows:        len(st.Rows),
	}
	if !v.HasResult {
		return v
	}

	v.Columns = st.Registry.Columns()
	v.SelectedCount = st.Registry.IncludedCount()

	included := st.Registry.Included()
	for _, c := range included {
		v.PreviewHeaders = append(v.PreviewHeaders, c.Header())
	}
	for i, row := range st.Rows {
		if i == previewRows {
			break
		}
		cells := make([]string, len(included))
		for j, c := range included {
			val, _ := row.Get(c.Key)
			cells[j] = csvexport.CellText(val)
		}
		v.Preview = append(v.Preview, cells)
	}
	return v
}

func newBulkView(st *session.BulkState) bulkView {
	v := bulkView{
		MethodologyField: methodologyField{Options: domain.Methodologies, Selected: st.Methodology, Loading: st.Loading},
		File:             st.File,
		Loading:          st.Loading,
		Error:            st.Error,
		Success:          st.Success,
		Stats:            st.Stats,
		Downloadable:     st.Downloadable(),
	}
	if st.Result != nil {
		v.ResultName = st.Result.Filename
	}
	return v
}

// SingleStateResponse is the JSON view of the single-document page state.
type SingleStateResponse struct {
	Methodology   domain.Methodology `json:"methodology"`
	File          *domain.FileInfo   `json:"file,omitempty"`
	Loading       bool               `json:"loading"`
	Error         string             `json:"error,omitempty"`
	Shape         string             `json:"shape,omitempty"`
	Columns       []columns.Column   `json:"columns"`
	SelectedCount int                `json:"selected_count"`
	TotalRows     int                `json:"total_rows"`
	Rows          rowset.RowSet      `json:"rows"`
	Summary       *rowset.Summary    `json:"summary,omitempty"`
}

func newSingleStateResponse(st *session.SingleState) SingleStateResponse {
	resp := SingleStateResponse{
		Methodology:   st.Methodology,
		File:          st.File,
		Loading:       st.Loading,
		Error:         st.Error,
		Shape:         st.Shape,
		Columns:       st.Registry.Columns(),
		SelectedCount: st.Registry.IncludedCount(),
		TotalRows:     len(st.Rows),
		Rows:          st.Rows,
		Summary:       st.Summary,
	}
	if resp.Columns == nil {
		resp.Columns = []columns.Column{}
	}
	if resp.Rows == nil {
		resp.Rows = rowset.RowSet{}
	}
	return resp
}
