package academia

import (
	"testing"
	"time"

	"academia-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestCalendarPath(t *testing.T) {
	tz := timezone.Location

	even := CalendarPath(time.Date(2025, 3, 10, 0, 0, 0, 0, tz))
	require.Equal(t, "/srm_university/academia-academic-services/page/Academic_Planner_2024_25_EVEN", even)

	odd := CalendarPath(time.Date(2025, 8, 30, 0, 0, 0, 0, tz))
	require.Equal(t, "/srm_university/academia-academic-services/page/Academic_Planner_2025_26_ODD", odd)
}

func TestCoursePath(t *testing.T) {
	path := CoursePath(time.Date(2025, 8, 30, 0, 0, 0, 0, timezone.Location))
	require.Equal(t, "/srm_university/academia-academic-services/page/My_Time_Table_2023_24", path)
}

func TestExtractSessionCookies(t *testing.T) {
	cookies := extractSessionCookies([]string{
		"JSESSIONID=abc123; Path=/; HttpOnly",
		"cleared=; Max-Age=0",
		"iamadt=token; Secure",
	})
	require.Equal(t, "JSESSIONID=abc123; iamadt=token", cookies)
}
