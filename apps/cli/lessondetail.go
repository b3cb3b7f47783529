package main

import (
	"context"
	"fmt"
)

// lessonDetailView renders one lesson's attendance roster in the order the
// server sent it.
func (cli *commandLine) lessonDetailView(ctx context.Context, id int) error {
	detail, err := cli.schedSvc.Detail(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(cli.out, "\n%s\n", detail.CourseName)
	fmt.Fprintf(cli.out, "%s - %s\n",
		detail.StartTime.Local().Format("Mon 02 Jan 15:04"),
		detail.EndTime.Local().Format("15:04"),
	)
	if len(detail.StudentsAttendance) == 0 {
		fmt.Fprintln(cli.out, "No students in this lesson's groups.")
		return nil
	}
	for _, student := range detail.StudentsAttendance {
		status, scanTime := "absent", ""
		if student.IsPresent {
			status, scanTime = "present", student.ScanTime
		}
		fmt.Fprintf(cli.out, "  %-30s %-8s %s\n", student.FullName, status, scanTime)
	}
	return nil
}
