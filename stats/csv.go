package stats

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV renders a Ledger's latency entries as one CSV row per delivered
// packet, per spec.md §7's external CSV export requirement. Columns are
// timestamp, source, destination, queueing_delay, transfer_delay, data_rate.
func WriteCSV(w io.Writer, ledger *Ledger) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"timestamp", "source", "destination", "queueing_delay", "transfer_delay", "data_rate"}); err != nil {
		return err
	}
	for _, e := range ledger.Latency {
		row := []string{
			strconv.FormatInt(e.Timestamp, 10),
			strconv.Itoa(e.Source),
			strconv.Itoa(e.Destination),
			strconv.FormatInt(e.QueueingDelay, 10),
			strconv.FormatInt(e.TransferDelay, 10),
			strconv.FormatFloat(e.DataRate, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
