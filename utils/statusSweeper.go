package utils

import (
	"fmt"
	"log"
	"time"

	"volunect/lifecycle"

	"github.com/robfig/cron/v3"
)

// logSweeper logs sweep events with timestamp
func logSweeper(message string) {
	log.Printf("[STATUS-SWEEP %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartStatusSweep runs the engine's open-task derivation on a cron
// schedule. Reads through the engine are always reconciled on the fly; this
// sweep only exists for consumers that query storage directly and would
// otherwise see stale OPEN rows. Leave STATUS_SWEEP_CRON empty to disable.
func StartStatusSweep(spec string, engine *lifecycle.Engine) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		closed, err := engine.SweepOpenTasks()
		if err != nil {
			logSweeper("Error sweeping open tasks: " + err.Error())
			return
		}
		if closed > 0 {
			logSweeper(fmt.Sprintf("Closed %d past-dated tasks", closed))
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logSweeper("Status sweep scheduled: " + spec)
	return c, nil
}
