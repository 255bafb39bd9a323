package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/views"
)

func checkbox(t models.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// renderTask prints one task line, plus its description when present.
//
//	[ ] #4  Review pull request  (high, due Today)
func renderTask(w io.Writer, t models.Task, now time.Time) {
	when := "due " + views.ShortDueLabel(t.DueDate, now)
	if t.Completed && t.CompletedAt != nil {
		when = "done " + t.CompletedAt.In(now.Location()).Format("Jan 2 15:04")
	} else if views.IsOverdue(t, now) {
		when = "overdue, was due " + views.ShortDueLabel(t.DueDate, now)
	}
	fmt.Fprintf(w, "  %s #%-3d %s  (%s, %s)\n", checkbox(t), t.ID, t.Title, t.Priority, when)
	if t.Description != "" {
		fmt.Fprintf(w, "         %s\n", t.Description)
	}
}

func renderTasks(w io.Writer, tasks []models.Task, now time.Time) {
	for _, t := range tasks {
		renderTask(w, t, now)
	}
}

func renderGroups(w io.Writer, groups []views.Group, now time.Time) {
	for _, g := range groups {
		fmt.Fprintf(w, "%s (%d)\n", g.Key, len(g.Tasks))
		renderTasks(w, g.Tasks, now)
	}
}

func renderHeader(w io.Writer, title, summary string) {
	fmt.Fprintf(w, "== %s ==\n", title)
	if summary != "" {
		fmt.Fprintln(w, summary)
	}
}

func renderDashboard(w io.Writer, p *views.DashboardPage, now time.Time) {
	renderHeader(w, "Dashboard", now.Format("Monday, January 2"))
	s := p.Stats()
	fmt.Fprintf(w, "Total %d | Completed %d | Pending %d | Overdue %d | Today %d | This week %d\n",
		s.Total, s.Completed, s.Pending, s.Overdue, s.Today, s.ThisWeek)
	if alert := p.Alert(); alert != "" {
		fmt.Fprintln(w, "! "+alert)
	}

	sections := []struct {
		title string
		cat   views.Category
		empty string
	}{
		{"Today", views.CategoryToday, "Nothing due today"},
		{"Upcoming", views.CategoryUpcoming, "Nothing coming up"},
		{"Overdue", views.CategoryOverdue, "Nothing overdue"},
	}
	for _, sec := range sections {
		tasks := p.Category(sec.cat)
		fmt.Fprintf(w, "%s (%d)\n", sec.title, len(tasks))
		if len(tasks) == 0 {
			fmt.Fprintf(w, "  %s\n", sec.empty)
			continue
		}
		renderTasks(w, tasks, now)
	}
}

func renderToday(w io.Writer, p *views.TodayPage, now time.Time) {
	renderHeader(w, "Today", p.Summary())
	fmt.Fprintf(w, "Filter: %s\n", p.Filter)
	tasks := p.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(w, "  "+p.EmptyMessage())
		return
	}
	renderTasks(w, tasks, now)
}

func renderUpcoming(w io.Writer, p *views.UpcomingPage, now time.Time) {
	renderHeader(w, "Upcoming", p.Summary())
	fmt.Fprintf(w, "Filter: %s\n", p.Filter)
	groups := p.Groups()
	if len(groups) == 0 {
		fmt.Fprintln(w, "  "+p.EmptyMessage())
		return
	}
	renderGroups(w, groups, now)
}

func renderCompleted(w io.Writer, p *views.CompletedPage, now time.Time) {
	renderHeader(w, "Completed", p.Summary())
	fmt.Fprintf(w, "Period: %s\n", p.Period)
	groups := p.Groups()
	if len(groups) == 0 {
		fmt.Fprintln(w, "  "+p.EmptyMessage())
		return
	}
	renderGroups(w, groups, now)
}

func renderUser(w io.Writer, u *models.User) {
	verified := "no"
	if u.EmailVerified {
		verified = "yes"
	}
	lastLogin := "never"
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.Local().Format("Jan 2, 2006 15:04")
	}
	notify := make([]string, 0, 4)
	n := u.Preferences.Notifications
	for _, ch := range []struct {
		name string
		on   bool
	}{{"email", n.Email}, {"push", n.Push}, {"reminders", n.TaskReminders}, {"team", n.TeamUpdates}} {
		if ch.on {
			notify = append(notify, ch.name)
		}
	}

	if len(notify) == 0 {
		notify = append(notify, "none")
	}

	fmt.Fprintf(w, "%s <%s> (#%d)\n", u.Name, u.Email, u.ID)
	fmt.Fprintf(w, "  verified: %s, member since %s, last login %s\n",
		verified, u.CreatedAt.Local().Format("Jan 2, 2006"), lastLogin)
	fmt.Fprintf(w, "  theme: %s, timezone: %s, notifications: %s\n",
		u.Preferences.Theme, u.Preferences.Timezone, strings.Join(notify, ", "))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// renderSettings prints the settings screen: profile, then preferences.
func renderSettings(w io.Writer, u *models.User) {
	p := u.Preferences
	renderHeader(w, "Settings", "")
	fmt.Fprintln(w, "Profile")
	fmt.Fprintf(w, "  name:  %s\n", u.Name)
	fmt.Fprintf(w, "  email: %s\n", u.Email)
	fmt.Fprintln(w, "Preferences")
	fmt.Fprintf(w, "  theme:    %s\n", p.Theme)
	fmt.Fprintf(w, "  timezone: %s\n", p.Timezone)
	fmt.Fprintln(w, "Notifications")
	fmt.Fprintf(w, "  email:          %s\n", onOff(p.Notifications.Email))
	fmt.Fprintf(w, "  push:           %s\n", onOff(p.Notifications.Push))
	fmt.Fprintf(w, "  task reminders: %s\n", onOff(p.Notifications.TaskReminders))
	fmt.Fprintf(w, "  team updates:   %s\n", onOff(p.Notifications.TeamUpdates))
}
