package monitor

import "time"

type Status struct {
	Tables    bool      `json:"tables"`
	LastCheck time.Time `json:"last_check"`
}
