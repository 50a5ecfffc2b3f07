package ingest

// Column names of the legacy Greenspot export. The file ships with this exact
// mixed-case header row; lookups go through the canonical constants only.
const (
	ColItemNum        = "Item num"
	ColDescription    = "description"
	ColQuantityOnHand = "quantity on-hand"
	ColCost           = "cost"
	ColPurchaseDate   = "purchase date"
	ColVendor         = "vendor"
	ColPrice          = "price"
	ColDateSold       = "date sold"
	ColCustomer       = "cust"
	ColQuantity       = "Quantity"
	ColItemType       = "item type"
	ColLocation       = "Location"
	ColUnit           = "Unit"
)

// RequiredColumns are the columns a dataset must carry for a run to start.
// A missing column is a fatal schema error; an empty cell is ordinary data.
func RequiredColumns() []string {
	return []string{
		ColItemNum,
		ColDescription,
		ColQuantityOnHand,
		ColCost,
		ColPurchaseDate,
		ColVendor,
		ColPrice,
		ColDateSold,
		ColCustomer,
		ColQuantity,
		ColItemType,
		ColLocation,
		ColUnit,
	}
}

// RawRow is one row of the denormalized source file. Values are trimmed;
// an absent column and an empty cell are both represented by the empty string.
type RawRow struct {
	Line   int
	Fields map[string]string
}

// Get returns the trimmed value of a column, or "" when absent
func (r RawRow) Get(column string) string {
	return r.Fields[column]
}

// Has reports whether the column carries a non-empty value
func (r RawRow) Has(column string) bool {
	return r.Fields[column] != ""
}

// IsEmpty reports whether the row has no non-empty values
func (r RawRow) IsEmpty() bool {
	for _, v := range r.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// Dataset is one bounded, complete input file
type Dataset struct {
	Source  string
	Columns []string
	Rows    []RawRow
}

// HasColumn reports whether the header row contained the column
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the required columns absent from the header
func (d *Dataset) MissingColumns(required []string) []string {
	var missing []string
	for _, c := range required {
		if !d.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
