package bot

import (
	"fmt"
	"html"
	"strings"
	"time"

	"task-planner/internal/engine"
	"task-planner/internal/model"
	"task-planner/internal/service"
)

const timelineWidth = 24

func escape(s string) string {
	return html.EscapeString(s)
}

// shortName cuts name to maxLen runes, marking the cut with an ellipsis.
func shortName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func formatTaskCreated(task model.Task, loc *time.Location) string {
	return fmt.Sprintf("✅ Task #%d saved.\n<b>%s</b> <i>(%s, P%d)</i>\n🕘 %s–%s\n⏰ %s",
		task.ID(),
		escape(task.Name()),
		task.Type(),
		task.Priority(),
		task.Start().In(loc).Format(dateTimeLayout),
		task.End().In(loc).Format(clockLayout),
		task.Deadline().In(loc).Format(dateTimeLayout))
}

func deadlineIcon(deadline, now time.Time) string {
	switch left := deadline.Sub(now); {
	case left < 0:
		return "⚠️"
	case left <= engine.UpcomingWindow:
		return "⏳"
	default:
		return "🟢"
	}
}

func formatTaskLine(task model.Task, now time.Time) string {
	loc := now.Location()
	return fmt.Sprintf("%s #%d <b>%s</b> <i>(%s, P%d)</i>\n   🕘 %s–%s · ⏰ %s",
		deadlineIcon(task.Deadline(), now),
		task.ID(),
		escape(task.Name()),
		task.Type(),
		task.Priority(),
		task.Start().In(loc).Format(dateTimeLayout),
		task.End().In(loc).Format(clockLayout),
		task.Deadline().In(loc).Format(dateTimeLayout))
}

func formatTaskList(title string, tasks []model.Task, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for _, task := range tasks {
		sb.WriteString(formatTaskLine(task, now))
		sb.WriteByte('\n')
	}
	return strings.TrimSpace(sb.String())
}

func formatPlan(result service.PlanResult, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🧮 <b>Plan</b> for %d h\n", result.Capacity))
	sb.WriteString(fmt.Sprintf("Total priority: <b>%d</b>, hours used: %d\n\n", result.BestPriority, result.Hours()))
	if len(result.Selected) == 0 {
		sb.WriteString("Nothing fits into this budget.")
		return sb.String()
	}
	for _, task := range result.Selected {
		sb.WriteString(formatTaskLine(task, now))
		sb.WriteByte('\n')
	}
	if len(result.Conflicts) > 0 {
		sb.WriteString("\n⚠️ <b>Overlapping</b>\n")
		for _, c := range result.Conflicts {
			sb.WriteString(fmt.Sprintf("• %s × %s\n", escape(c.First.Name()), escape(c.Second.Name())))
		}
	}
	return strings.TrimSpace(sb.String())
}

func formatReminder(r engine.Reminder, loc *time.Location) string {
	icon := "⏳"
	if r.Kind == engine.Missed {
		icon = "⚠️"
	}
	return fmt.Sprintf("%s %s <i>(deadline %s)</i>", icon, escape(r.Message), r.Task.Deadline().In(loc).Format(dateTimeLayout))
}

func formatDensity(d engine.Density, loc *time.Location) string {
	if len(d.Slots) == 0 {
		return "No tasks to analyze."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 <b>Busiest slot</b> (%s buckets): %s with %d task(s)\n\n",
		d.Interval, d.Peak.Start.In(loc).Format(dateTimeLayout), d.Peak.Count))
	sb.WriteString("<pre>")
	for _, slot := range d.Slots {
		sb.WriteString(fmt.Sprintf("%s %s %d\n", slot.Start.In(loc).Format(dateTimeLayout), strings.Repeat("█", slot.Count), slot.Count))
	}
	sb.WriteString("</pre>")
	return sb.String()
}

// formatTimeline draws each bar scaled to a fixed width between the
// timeline's bounds.
func formatTimeline(tl engine.Timeline, loc *time.Location) string {
	if len(tl.Bars) == 0 {
		return "No tasks to chart."
	}
	span := tl.To.Sub(tl.From)
	nameWidth := 0
	for _, bar := range tl.Bars {
		if n := len([]rune(shortName(bar.Name, 16))); n > nameWidth {
			nameWidth = n
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📈 <b>Timeline</b> %s – %s\n<pre>",
		tl.From.In(loc).Format(dateTimeLayout), tl.To.In(loc).Format(dateTimeLayout)))
	for _, bar := range tl.Bars {
		from, to := 0, timelineWidth
		if span > 0 {
			from = int(int64(bar.Start.Sub(tl.From)) * timelineWidth / int64(span))
			to = int(int64(bar.End.Sub(tl.From)) * timelineWidth / int64(span))
		}
		if to <= from {
			to = from + 1
		}
		if to > timelineWidth {
			to = timelineWidth
			from = min(from, to-1)
		}
		name := shortName(bar.Name, 16)
		sb.WriteString(fmt.Sprintf("%s%s |%s%s%s| %s %s–%s\n",
			escape(name),
			strings.Repeat(" ", nameWidth-len([]rune(name))),
			strings.Repeat(" ", from),
			strings.Repeat("█", to-from),
			strings.Repeat(" ", timelineWidth-to),
			bar.Type,
			bar.Start.In(loc).Format(clockLayout),
			bar.End.In(loc).Format(clockLayout)))
	}
	sb.WriteString("</pre>")
	return sb.String()
}
