package game

// ResultType tags an effect record of the results log.
type ResultType string

const (
	ResultHomeworld   ResultType = "homeworld"
	ResultDiscover    ResultType = "discover"
	ResultMove        ResultType = "move"
	ResultBuild       ResultType = "build"
	ResultConvert     ResultType = "convert"
	ResultCapture     ResultType = "capture"
	ResultSacrifice   ResultType = "sacrifice"
	ResultCatastrophe ResultType = "catastrophe"
	ResultEliminated  ResultType = "eliminated"
	ResultPass        ResultType = "pass"
	ResultEndOfGame   ResultType = "eog"
	ResultWinners     ResultType = "winners"
)

// Result is one effect of an executed move, in execution order. Only the
// fields relevant to Type are set.
type Result struct {
	Type   ResultType `json:"type"`
	Seat   Seat       `json:"seat,omitempty"`
	Ship   string     `json:"ship,omitempty"`
	NewID  string     `json:"newId,omitempty"`
	System string     `json:"system,omitempty"`
	To     string     `json:"to,omitempty"`
	Stars  []Piece    `json:"stars,omitempty"`
	Pieces []Piece    `json:"pieces,omitempty"`
	Colour string     `json:"colour,omitempty"`
	Count  int        `json:"count,omitempty"`
	Seats  []Seat     `json:"seats,omitempty"`
}
