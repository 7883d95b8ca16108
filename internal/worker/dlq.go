package worker

import (
	"context"
	"encoding/json"
)

// ListarDLQ returns the dead-letter jobs without consuming them.
func (p *Pool) ListarDLQ(ctx context.Context) ([]Job, error) {
	raws, err := p.rdb.LRange(ctx, colaDLQ, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	jobs := make([]Job, 0, len(raws))
	for _, raw := range raws {
		var j Job
		if json.Unmarshal([]byte(raw), &j) == nil {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

// ReencolarDLQ moves every dead-letter job back to the main queue with a
// fresh retry budget.
func (p *Pool) ReencolarDLQ(ctx context.Context) (int, error) {
	var movidos int
	for {
		raw, err := p.rdb.RPop(ctx, colaDLQ).Result()
		if err != nil {
			// redis.Nil means the DLQ is drained
			break
		}
		var j Job
		if json.Unmarshal([]byte(raw), &j) != nil {
			continue
		}
		j.Intentos = 0
		if err := p.push(ctx, colaPrincipal, j); err != nil {
			return movidos, err
		}
		movidos++
	}
	return movidos, nil
}
