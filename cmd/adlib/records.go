package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/adlib"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	filter := adlib.RecordFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Status != "" {
		status := adlib.Status(c.Status)
		filter.Status = &status
	}
	if c.SourceURL != "" {
		filter.SourceURL = &c.SourceURL
	}

	recs, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adlib.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'adlib crawl' to create some.")
		return nil
	}

	if c.Full {
		enc := json.NewEncoder(deps.Stdout)
		for _, rec := range recs {
			if err := enc.Encode(rec); err != nil {
				return err
			}
		}
		return nil
	}

	for _, rec := range recs {
		advertiser := rec.AdvertiserName
		if advertiser == "" {
			advertiser = "(unknown advertiser)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %-30s  %s\n", rec.ID, rec.Status, advertiser, rec.SourceURL)
	}

	return nil
}
