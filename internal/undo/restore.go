package undo

import (
	"fmt"

	"chanctl/internal/channel"
	"chanctl/internal/plan"
)

// RestorePlan turns a snapshot into an overwrite plan: every mutable field
// of every captured channel is written back to its pre-operation value. The
// plan runs through the regular apply executor; the remote state is unknown
// at this point, so nothing is diffed or dropped.
func RestorePlan(snap *Snapshot, codec plan.Codec) (*plan.Plan, error) {
	p := &plan.Plan{Instance: snap.Instance}
	for i := range snap.Channels {
		c := &snap.Channels[i]
		entry := plan.Entry{
			ChannelID:   c.ID,
			ChannelName: c.Name,
			Payload:     map[string]any{},
		}
		for _, f := range channel.Fields() {
			value := f.Get(c)
			key, encoded, err := codec.EncodeField(f, value)
			if err != nil {
				return nil, fmt.Errorf("encoding field %q for channel %d: %w", f.Name, c.ID, err)
			}
			entry.Payload[key] = encoded
			entry.Changes = append(entry.Changes, plan.Change{Field: f.Name, New: value})
		}
		p.Entries = append(p.Entries, entry)
	}
	return p, nil
}
