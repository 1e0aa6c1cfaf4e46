package export

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// State is the small application snapshot kept beside the ledger. It is
// fully derivable: DayIndex is the record count and BalanceRollover the
// last recorded balance.
type State struct {
	DayIndex        int `json:"day_index"`
	BalanceRollover int `json:"balance_rollover"`
}

// EncodeState renders the state snapshot as JSON.
func EncodeState(s State) ([]byte, error) {
	b, err := json.Marshal(s)
	return b, errors.Wrap(err, "encode state")
}

// DecodeState parses a state snapshot.
func DecodeState(b []byte) (State, error) {
	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return State{}, errors.Wrap(err, "decode state")
	}
	return s, nil
}
