package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"chanctl/internal/apply"
	"chanctl/internal/channel"
	"chanctl/internal/crosssite"
	"chanctl/internal/plan"
	"chanctl/internal/undo"
	pkgstrings "chanctl/pkg/strings"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}

func statusCell(status int) string {
	name := channel.StatusName(status)
	switch status {
	case channel.StatusEnabled:
		return text.FgGreen.Sprint(name)
	case channel.StatusAutoDisabled:
		return text.FgRed.Sprint(name)
	default:
		return text.FgYellow.Sprint(name)
	}
}

func cell(v any) string {
	return pkgstrings.TruncateCell(channel.FormatValue(v), pkgstrings.DefaultCellMaxLen)
}

// RenderChannels prints a channel listing.
func RenderChannels(out io.Writer, channels []channel.Channel) {
	t := newTable(out)
	t.AppendHeader(table.Row{"ID", "Name", "Type", "Status", "Priority", "Weight", "Groups", "Models"})
	for i := range channels {
		c := &channels[i]
		t.AppendRow(table.Row{
			c.ID, c.Name, c.Type, statusCell(c.Status), c.Priority, c.Weight,
			cell(c.Groups), cell(c.Models),
		})
	}
	t.Render()
	fmt.Fprintf(out, "%d channels\n", len(channels))
}

// RenderPlan prints the per-field old -> new summary of every plan entry.
// This is the dry-run view and the body of the confirmation gate.
func RenderPlan(out io.Writer, p *plan.Plan) {
	if p.IsEmpty() {
		fmt.Fprintln(out, "Nothing to change.")
		return
	}
	t := newTable(out)
	t.AppendHeader(table.Row{"Channel", "Field", "Current", "New"})
	for _, entry := range p.Entries {
		label := fmt.Sprintf("%s (id %d)", entry.ChannelName, entry.ChannelID)
		for i, change := range entry.Changes {
			if i > 0 {
				label = ""
			}
			t.AppendRow(table.Row{label, change.Field, cell(change.Old), cell(change.New)})
		}
		t.AppendSeparator()
	}
	t.Render()
	fmt.Fprintf(out, "%d channels to update\n", len(p.Entries))
}

// RenderReport prints the apply outcome aggregation.
func RenderReport(out io.Writer, report *apply.Report) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Channel", "Result", "Reason"})
	for _, o := range report.Outcomes {
		label := fmt.Sprintf("%s (id %d)", o.ChannelName, o.ChannelID)
		if o.Failed() {
			t.AppendRow(table.Row{label, text.FgRed.Sprint("failed"), fmt.Sprintf("%s: %v", o.Reason, o.Err)})
		} else {
			t.AppendRow(table.Row{label, text.FgGreen.Sprint("ok"), ""})
		}
	}
	t.Render()
	fmt.Fprintf(out, "operation %s: %d succeeded, %d failed\n",
		report.OperationID, report.Succeeded(), report.Failed())
}

// RenderFieldReport prints a compare_fields result.
func RenderFieldReport(out io.Writer, report *crosssite.FieldReport) {
	fmt.Fprintf(out, "Source: %s (id %d)\n", report.SourceName, report.SourceID)
	t := newTable(out)
	t.AppendHeader(table.Row{"Target", "Field", "Source Value", "Target Value", "Equal"})
	for _, row := range report.Rows {
		equal := text.FgGreen.Sprint("yes")
		if !row.Equal {
			equal = text.FgRed.Sprint("NO")
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%s (id %d)", row.TargetName, row.TargetID),
			row.Field, cell(row.SourceValue), cell(row.TargetValue), equal,
		})
	}
	t.Render()
	fmt.Fprintf(out, "%d of %d compared values differ\n", report.Differences(), len(report.Rows))
}

// RenderCountReport prints a compare_channel_counts result.
func RenderCountReport(out io.Writer, report crosssite.CountReport) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Source Total", "Target Total", "Difference"})
	t.AppendRow(table.Row{report.Source, report.Target, fmt.Sprintf("%+d", report.Diff)})
	t.Render()
}

// RenderSnapshots prints the stored undo snapshots, newest first.
func RenderSnapshots(out io.Writer, infos []undo.Info) {
	if len(infos) == 0 {
		fmt.Fprintln(out, "No undo snapshots stored.")
		return
	}
	t := newTable(out)
	t.AppendHeader(table.Row{"Taken At", "Instance", "Kind", "Channels", "File"})
	for _, info := range infos {
		t.AppendRow(table.Row{
			info.TakenAt.Format("2006-01-02 15:04:05"),
			info.Instance, info.Kind, info.Channels, info.Path,
		})
	}
	t.Render()
}
