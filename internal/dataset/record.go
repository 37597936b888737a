// Package dataset builds mock print-job records from the files of a source directory.
package dataset

// PrintSide is the duplex setting of a print job.
type PrintSide string

const (
	SingleSide PrintSide = "SINGLE_SIDE"
	DoubleSide PrintSide = "DOUBLE_SIDE"
)

// PageSize is the paper format of a print job.
type PageSize string

const (
	PageA3 PageSize = "A3"
	PageA4 PageSize = "A4"
)

// Status is the processing state of a document in the print queue.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusIsPrinting Status = "IS_PRINTING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// statusCycle is the order statuses are handed out in.
var statusCycle = [...]Status{StatusPending, StatusIsPrinting, StatusCompleted, StatusFailed}

// PagesToPrint is the page selection carried by every record.
const PagesToPrint = "[1,2,3,4,5]"

const (
	maxCostPage = 20
	maxCopies   = 5
)

// DocumentRecord is one synthesized entry of the dataset.
type DocumentRecord struct {
	CustomerID     string    `json:"customerId"`
	FileName       string    `json:"fileName"`
	FileType       string    `json:"fileType"`
	TotalCostPage  int       `json:"totalCostPage"`
	PrintSideType  PrintSide `json:"printSideType"`
	PageSize       PageSize  `json:"pageSize"`
	PageToPrint    string    `json:"pageToPrint"`
	NumOfCop       int       `json:"numOfCop"`
	DocumentStatus Status    `json:"documentStatus"`
	FileContent    string    `json:"fileContent"`
}

// PrintSideFor returns SINGLE_SIDE for even indices and DOUBLE_SIDE otherwise.
func PrintSideFor(index int) PrintSide {
	if index%2 == 0 {
		return SingleSide
	}
	return DoubleSide
}

// PageSizeFor returns A3 for indices divisible by 3 and A4 otherwise.
func PageSizeFor(index int) PageSize {
	if index%3 == 0 {
		return PageA3
	}
	return PageA4
}

// StatusFor picks the status at index mod 4 of the status cycle.
func StatusFor(index int) Status {
	return statusCycle[index%len(statusCycle)]
}
