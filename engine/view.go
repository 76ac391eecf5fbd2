package engine

// ============================================================================
// DATASET & VIEW — Order-Preserving, Zero-Copy Data Access
// ============================================================================
// The engine holds one loaded table per session and answers queries against
// it. Filters never copy rows: they return index lists into the parent view.
//
// A cell is plain text. The empty string is the missing value — it never
// matches a text search, is excluded from distinct values and categorical
// counts, and exports as an empty CSV field.
// ============================================================================

// Missing is the cell value representing an absent entry.
const Missing = ""

// View provides indexed, read-only access to an ordered set of rows sharing
// a column set. Filters return Views; aggregates consume them.
type View interface {
	Len() int
	Columns() []string
	// Cell returns the text value at (row, column), or Missing when the
	// column is absent or the cell is empty.
	Cell(row int, column string) string
	// Row returns the cells of one row in Columns() order.
	Row(row int) []string
}

// ============================================================================
// DATASET — the root view
// ============================================================================

// Dataset is a loaded table: the column set fixed at load time plus the rows
// in file order. It is immutable after construction; reloads and uploads
// replace the whole Dataset, never mutate it.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewDataset builds a Dataset from a header and rows. Short rows are padded
// with missing cells and long rows truncated, so every row matches the
// column set.
func NewDataset(columns []string, rows [][]string) *Dataset {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	fitted := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == len(columns) {
			fitted[i] = row
			continue
		}
		r := make([]string, len(columns))
		copy(r, row)
		fitted[i] = r
	}

	return &Dataset{columns: columns, index: index, rows: fitted}
}

func (d *Dataset) Len() int          { return len(d.rows) }
func (d *Dataset) Columns() []string { return d.columns }

func (d *Dataset) Cell(row int, column string) string {
	if row < 0 || row >= len(d.rows) {
		return Missing
	}
	ci, ok := d.index[column]
	if !ok {
		return Missing
	}
	return d.rows[row][ci]
}

func (d *Dataset) Row(row int) []string {
	if row < 0 || row >= len(d.rows) {
		return nil
	}
	return d.rows[row]
}

// HasColumn reports whether the view carries a column. Every operation that
// references a column by name checks this first and degrades instead of
// failing when the column is absent.
func HasColumn(v View, column string) bool {
	for _, c := range v.Columns() {
		if c == column {
			return true
		}
	}
	return false
}

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// subView is an order-preserving subset of a parent View.
// Holds indices into the parent — no row copy.
type subView struct {
	parent  View
	indices []int
}

func newSubView(parent View, indices []int) View {
	return &subView{parent: parent, indices: indices}
}

func (v *subView) Len() int          { return len(v.indices) }
func (v *subView) Columns() []string { return v.parent.Columns() }

func (v *subView) Cell(row int, column string) string {
	if row < 0 || row >= len(v.indices) {
		return Missing
	}
	return v.parent.Cell(v.indices[row], column)
}

func (v *subView) Row(row int) []string {
	if row < 0 || row >= len(v.indices) {
		return nil
	}
	return v.parent.Row(v.indices[row])
}

// Rows materializes a view's rows. Used by exporters and table builders;
// query paths stay on the View interface.
func Rows(v View) [][]string {
	out := make([][]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		out[i] = v.Row(i)
	}
	return out
}
