package schedule

import (
	"strings"
	"time"

	"github.com/trezcool/hudhura/core/session"
)

type (
	Teacher struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	Group struct {
		Name string `json:"name"`
	}

	// AttendanceInfo is the viewer-dependent slice of a lesson: a student
	// sees their own presence, a teacher only gets the role marker.
	AttendanceInfo struct {
		Role      session.Role `json:"role"`
		IsPresent bool         `json:"is_present"`
		ScanTime  string       `json:"scan_time,omitempty"`
	}

	// Lesson is one schedule entry, read-only and scoped server-side by the
	// token identity. QRToken is only populated for privileged viewers.
	Lesson struct {
		ID             int             `json:"id"`
		CourseName     string          `json:"course_name"`
		Teacher        Teacher         `json:"teacher"`
		LessonGroups   []Group         `json:"lesson_groups"`
		StartTime      time.Time       `json:"start_time"`
		EndTime        time.Time       `json:"end_time"`
		QRToken        string          `json:"qr_token,omitempty"`
		IsActive       bool            `json:"is_active"`
		ServerTime     string          `json:"server_time"`
		AttendanceInfo *AttendanceInfo `json:"attendance_info"`
	}

	StudentAttendance struct {
		ID        int    `json:"id"`
		FullName  string `json:"full_name"`
		IsPresent bool   `json:"is_present"`
		ScanTime  string `json:"scan_time,omitempty"`
	}

	// LessonDetail is the full roster of one lesson, teacher's view.
	LessonDetail struct {
		ID                 int                 `json:"id"`
		CourseName         string              `json:"course_name"`
		StartTime          time.Time           `json:"start_time"`
		EndTime            time.Time           `json:"end_time"`
		StudentsAttendance []StudentAttendance `json:"students_attendance"`
	}

	// MarkRequest is the attendance mark submission: the decoded QR payload
	// plus the derived device identifier (a non-cryptographic hint, not a
	// security control).
	MarkRequest struct {
		QRToken  string `json:"qr_token"`
		DeviceID string `json:"device_id"`
	}

	markResponse struct {
		Success string `json:"success"`
	}
)

func (l Lesson) GroupNames() string {
	names := make([]string, 0, len(l.LessonGroups))
	for _, g := range l.LessonGroups {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

// IsMine reports whether the viewer teaches this lesson.
func (l Lesson) IsMine() bool {
	return l.AttendanceInfo != nil && l.AttendanceInfo.Role.IsTeacher()
}
