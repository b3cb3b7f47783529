package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/hudhura/core/schedule"
)

// scheduleView renders the viewer's lessons in the order the server sent them
// (newest first). Running the command again is the refresh.
func (cli *commandLine) scheduleView(ctx context.Context) error {
	lessons, err := cli.schedSvc.List(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out, "\nSchedule")
	if len(lessons) == 0 {
		fmt.Fprintln(cli.out, "No lessons yet.")
		return nil
	}

	// badges compare against the server clock, not the device's
	now := serverNow(lessons[0].ServerTime)
	fmt.Fprintf(cli.out, "Today: %s\n", now.Local().Format("Mon 02 Jan 15:04"))
	role := cli.sessSvc.Role()
	for _, l := range lessons {
		fmt.Fprintf(cli.out, "  #%-4d %-28s %s\n", l.ID, l.CourseName, lessonAnnotations(l, now))
		fmt.Fprintf(cli.out, "        %s - %s · %s %s · %s\n",
			l.StartTime.Local().Format("Mon 02 Jan 15:04"),
			l.EndTime.Local().Format("15:04"),
			l.Teacher.FirstName, l.Teacher.LastName,
			l.GroupNames(),
		)
	}
	if !role.IsStudent() {
		fmt.Fprintln(cli.out, "\nlesson ID shows a lesson's attendance roster.")
	}
	return nil
}

func lessonAnnotations(l schedule.Lesson, now time.Time) string {
	if l.IsMine() {
		return "(my lesson)"
	}
	badge := schedule.BadgeFor(l, now)
	if badge == schedule.BadgeNone {
		return ""
	}
	if badge == schedule.BadgePresent && l.AttendanceInfo.ScanTime != "" {
		return fmt.Sprintf("[%s %s]", badge, l.AttendanceInfo.ScanTime)
	}
	return "[" + badge.String() + "]"
}

func serverNow(serverTime string) time.Time {
	if t, err := time.Parse(time.RFC3339, serverTime); err == nil {
		return t
	}
	return nowFunc()
}
