package academia

import (
	"fmt"
	"time"
)

const BaseUrl = "https://academia.srmist.edu.in"

const AttendancePath = "/srm_university/academia-academic-services/page/My_Attendance"
const TimetablePath = "/srm_university/academia-academic-services/page/Unified_Time_Table_2024_batch_2"

// CalendarPath computes the academic planner page for the term
// containing `now`. January through June is the EVEN term of the
// academic year that started the previous July.
func CalendarPath(now time.Time) string {
	year := now.Year()
	if now.Month() <= time.June {
		return fmt.Sprintf(
			"/srm_university/academia-academic-services/page/Academic_Planner_%d_%02d_EVEN",
			year-1, year%100,
		)
	}
	return fmt.Sprintf(
		"/srm_university/academia-academic-services/page/Academic_Planner_%d_%02d_ODD",
		year, (year+1)%100,
	)
}

// CoursePath computes the course listing page, published under the
// academic year the current batch enrolled in.
func CoursePath(now time.Time) string {
	year := now.Year()
	return fmt.Sprintf(
		"/srm_university/academia-academic-services/page/My_Time_Table_%d_%02d",
		year-2, (year-1)%100,
	)
}
