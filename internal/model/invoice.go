// Package model holds the data types shared by the invoice extraction pipeline.
package model

// Field keys in fixed column order.
const (
	FieldOrderNumber     = "orderNumber"
	FieldInvoiceNumber   = "invoiceNumber"
	FieldBuyerName       = "buyerName"
	FieldBuyerAddress    = "buyerAddress"
	FieldInvoiceDate     = "invoiceDate"
	FieldOrderDate       = "orderDate"
	FieldProductTitle    = "productTitle"
	FieldHSN             = "hsn"
	FieldTaxableValue    = "taxableValue"
	FieldDiscount        = "discount"
	FieldTaxRateCategory = "taxRateCategory"
)

// Column pairs a field key with its human-readable title.
type Column struct {
	Key   string `json:"key" yaml:"key"`
	Title string `json:"title" yaml:"title"`
}

// InvoiceColumns returns the output columns in fixed order.
func InvoiceColumns() []Column {
	return []Column{
		{Key: FieldOrderNumber, Title: "Order Number"},
		{Key: FieldInvoiceNumber, Title: "Invoice Number"},
		{Key: FieldBuyerName, Title: "Buyer Name"},
		{Key: FieldBuyerAddress, Title: "Buyer Address"},
		{Key: FieldInvoiceDate, Title: "Invoice Date"},
		{Key: FieldOrderDate, Title: "Order Date"},
		{Key: FieldProductTitle, Title: "Product Title"},
		{Key: FieldHSN, Title: "HSN"},
		{Key: FieldTaxableValue, Title: "Taxable Value"},
		{Key: FieldDiscount, Title: "Discount"},
		{Key: FieldTaxRateCategory, Title: "Tax Rate and Category"},
	}
}

// FieldKeys returns the field keys in column order.
func FieldKeys() []string {
	cols := InvoiceColumns()
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}

// SourceItem is one remote document to process. Seq is 1-based.
type SourceItem struct {
	URL string `json:"url"`
	Seq int    `json:"seq"`
}

// FieldRecord maps every field key to its extracted value. A nil value means
// the field was absent from the document.
type FieldRecord map[string]*string

// Get returns the value for key and whether it was present.
func (r FieldRecord) Get(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Found returns the number of present fields.
func (r FieldRecord) Found() int {
	n := 0
	for _, v := range r {
		if v != nil {
			n++
		}
	}
	return n
}

// Defaults returns a row containing exactly the eleven field keys, with absent
// values replaced by the empty string.
func (r FieldRecord) Defaults() map[string]string {
	row := make(map[string]string, len(InvoiceColumns()))
	for _, key := range FieldKeys() {
		v, _ := r.Get(key)
		row[key] = v
	}
	return row
}
