package grammar

type Terminal struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Literal  string `json:"literal"`
}

type NonTerminal struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type Production struct {
	Number int   `json:"number"`
	LHS    int   `json:"lhs"`
	RHS    []int `json:"rhs"`
}

type Item struct {
	Production int `json:"production"`
	Dot        int `json:"dot"`
	LookAhead  int `json:"look_ahead"`
}

type Transition struct {
	Symbol int `json:"symbol"`
	State  int `json:"state"`
}

type Reduce struct {
	LookAhead  []int `json:"look_ahead"`
	Production int   `json:"production"`
}

type State struct {
	Number int           `json:"number"`
	Kernel []*Item       `json:"kernel"`
	Shift  []*Transition `json:"shift"`
	Reduce []*Reduce     `json:"reduce"`
	GoTo   []*Transition `json:"goto"`
	Accept []int         `json:"accept"`
}

type Report struct {
	ReducePlacement string         `json:"reduce_placement"`
	MergedStates    int            `json:"merged_states"`
	Terminals       []*Terminal    `json:"terminals"`
	NonTerminals    []*NonTerminal `json:"non_terminals"`
	Productions     []*Production  `json:"productions"`
	States          []*State       `json:"states"`
}
