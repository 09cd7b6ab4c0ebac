package scoring

import (
	"fmt"
	"strconv"

	"github.com/tidwall/sjson"
)

// Summary renders the score sheet as a JSON document:
//
//	{"players":[{"name":"A","scores":[50],"total":50,"winner":false}],"leader":50}
//
// The "leader" key is left out when nobody leads.
func Summary(players []Player) ([]byte, error) {
	data := []byte(`{"players":[]}`)
	var err error

	for i, p := range players {
		base := "players." + strconv.Itoa(i)
		scores := p.scores
		if scores == nil {
			scores = []int{}
		}
		fields := []struct {
			path  string
			value any
		}{
			{base + ".name", p.name},
			{base + ".scores", scores},
			{base + ".total", p.total},
			{base + ".winner", p.isWinner},
		}
		for _, f := range fields {
			data, err = sjson.SetBytes(data, f.path, f.value)
			if err != nil {
				return nil, fmt.Errorf("error encoding %s: %w", f.path, err)
			}
		}
	}

	if best, ok := Leader(players); ok {
		data, err = sjson.SetBytes(data, "leader", best)
		if err != nil {
			return nil, fmt.Errorf("error encoding leader: %w", err)
		}
	}
	return data, nil
}
