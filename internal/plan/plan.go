package plan

import (
	"fmt"

	"chanctl/internal/channel"
	"chanctl/internal/filter"
)

// Codec converts a resolved field value into the transport shape of one API
// dialect. It may rename the field on the wire.
type Codec interface {
	EncodeField(f channel.Field, value any) (key string, encoded any, err error)
}

// Change is the human-readable record of one field mutation within an entry.
type Change struct {
	Field string
	Old   any
	New   any
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Field, channel.FormatValue(c.Old), channel.FormatValue(c.New))
}

// Entry is one channel's slice of the plan: the changed fields in transport
// shape plus their summaries.
type Entry struct {
	ChannelID   int64
	ChannelName string
	Payload     map[string]any
	Changes     []Change
}

// Plan is an ordered set of entries against one instance. Entry order
// follows the source listing order; channels with no net change never
// appear.
type Plan struct {
	Instance string
	Entries  []Entry
}

// IsEmpty reports whether there is nothing to apply.
func (p *Plan) IsEmpty() bool {
	return p == nil || len(p.Entries) == 0
}

// IDs returns the channel ids in plan order, for snapshot capture.
func (p *Plan) IDs() []int64 {
	ids := make([]int64, len(p.Entries))
	for i, e := range p.Entries {
		ids[i] = e.ChannelID
	}
	return ids
}

// Build assembles a plan: dedupe by id, select through the filter spec,
// resolve every enabled field update, encode changed values through the
// codec. Returns ErrNoMatch when the filter selects nothing.
func Build(channels []channel.Channel, spec *filter.Spec, updates UpdateSpec, codec Codec) (*Plan, error) {
	resolved, err := updates.normalize()
	if err != nil {
		return nil, err
	}

	channels = channel.Dedupe(channels)
	selected, err := filter.Select(channels, spec)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrNoMatch
	}

	p := &Plan{}
	for i := range selected {
		entry, err := buildEntry(&selected[i], resolved, codec)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			p.Entries = append(p.Entries, *entry)
		}
	}
	return p, nil
}

func buildEntry(c *channel.Channel, resolved map[string]FieldUpdate, codec Codec) (*Entry, error) {
	entry := &Entry{ChannelID: c.ID, ChannelName: c.Name, Payload: map[string]any{}}

	// Registry order keeps payloads and summaries deterministic.
	for _, f := range channel.Fields() {
		upd, ok := resolved[f.Name]
		if !ok {
			continue
		}

		mode := upd.EffectiveMode()
		desired := upd.Value
		if mode == ModeRegexReplace {
			desired = RegexRule{Pattern: upd.Pattern, Replacement: upd.Replacement}
		}

		current := f.Get(c)
		next, changed, err := Resolve(f, current, mode, desired)
		if err != nil {
			return nil, err
		}
		if !changed {
			continue
		}

		key, encoded, err := codec.EncodeField(f, next)
		if err != nil {
			return nil, fmt.Errorf("encoding field %q for channel %d: %w", f.Name, c.ID, err)
		}
		entry.Payload[key] = encoded
		entry.Changes = append(entry.Changes, Change{Field: f.Name, Old: current, New: next})
	}

	if len(entry.Payload) == 0 {
		return nil, nil
	}
	return entry, nil
}
