package model

// DataType tags the classified kind of a cell or claim value
type DataType string

const (
	DataPercentage DataType = "percentage"
	DataCurrency   DataType = "currency"
	DataRatio      DataType = "ratio"
	DataDecimal    DataType = "decimal"
	DataGrowth     DataType = "growth"
	DataInteger    DataType = "integer"
	DataText       DataType = "text"
	DataUnknown    DataType = "unknown"
)
